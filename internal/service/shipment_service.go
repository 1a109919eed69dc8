package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/events"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/messaging"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
	"github.com/google/uuid"
)

// ShipmentService orchestrates the shipment lifecycle: authorization per
// operation, persistence, then side effects in order. Persistence is always
// acknowledged before any notification or event goes out, and no side-effect
// failure ever changes an operation's outcome.
type ShipmentService struct {
	shipments repository.ShipmentStore
	qr        *QRService
	notifier  *NotificationService
	publisher messaging.EventPublisher
}

func NewShipmentService(shipments repository.ShipmentStore, qr *QRService, notifier *NotificationService, publisher messaging.EventPublisher) *ShipmentService {
	return &ShipmentService{
		shipments: shipments,
		qr:        qr,
		notifier:  notifier,
		publisher: publisher,
	}
}

// ListAll returns every shipment, newest first. Admins, agents and employees
// only. Shipments without a QR code get one provisioned in the background.
func (s *ShipmentService) ListAll(ctx context.Context, caller *domain.Caller) ([]*domain.Shipment, error) {
	if !caller.HasRole(domain.RoleAdmin, domain.RoleAgent, domain.RoleEmployee) {
		return nil, domain.ErrForbidden
	}

	shipments, err := s.shipments.List(ctx, repository.ShipmentFilter{})
	if err != nil {
		return nil, err
	}

	for _, shipment := range shipments {
		s.qr.BackfillAsync(shipment)
	}
	return shipments, nil
}

// ListMine returns the caller's own shipments.
func (s *ShipmentService) ListMine(ctx context.Context, caller *domain.Caller) ([]*domain.Shipment, error) {
	senderID := caller.ID
	shipments, err := s.shipments.List(ctx, repository.ShipmentFilter{SenderID: &senderID})
	if err != nil {
		return nil, err
	}

	for _, shipment := range shipments {
		s.qr.BackfillAsync(shipment)
	}
	return shipments, nil
}

// TrackByNumber is the public lookup. Sender redaction happens in the
// response projection, not here.
func (s *ShipmentService) TrackByNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	shipment, err := s.shipments.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	s.qr.BackfillAsync(shipment)
	return shipment, nil
}

// Create persists the draft with its initial pending history entry, then
// provisions the QR code and dispatches notifications. QR or notification
// failure is tolerated; the shipment is created either way.
func (s *ShipmentService) Create(ctx context.Context, caller *domain.Caller, draft domain.Shipment) (*domain.Shipment, error) {
	shipment := domain.NewShipment(draft)

	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}
	log.Printf("Shipment created: TrackingNumber=%s, Status=%s", shipment.TrackingNumber, shipment.Status)

	s.qr.EnsureQRCode(ctx, shipment)
	s.notifier.NotifyShipmentCreated(ctx, shipment, caller)
	s.publishEvent(events.ShipmentCreatedEvent, shipment, caller, nil)

	return shipment, nil
}

// Edit applies a partial update. Only an admin or the shipment's sender may
// edit.
func (s *ShipmentService) Edit(ctx context.Context, caller *domain.Caller, id uuid.UUID, patch domain.ShipmentPatch) (*domain.Shipment, error) {
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := shipment.SenderID != nil && *shipment.SenderID == caller.ID
	if !caller.HasRole(domain.RoleAdmin) && !isOwner {
		return nil, domain.ErrForbidden
	}

	patch.Apply(shipment)
	if err := s.shipments.Update(ctx, shipment); err != nil {
		return nil, err
	}

	updated, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyShipmentUpdated(ctx, updated, caller)
	s.publishEvent(events.ShipmentUpdatedEvent, updated, caller, nil)

	return updated, nil
}

// Delete removes the shipment. Admin-only, enforced at the route; deletion
// sends no notifications.
func (s *ShipmentService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.shipments.Delete(ctx, id)
}

// ChangeStatus sets the status and appends the matching history entry
// atomically, then notifies. Admins, agents and employees only.
func (s *ShipmentService) ChangeStatus(ctx context.Context, caller *domain.Caller, id uuid.UUID, request domain.ChangeStatusRequest) (*domain.Shipment, error) {
	if !caller.HasRole(domain.RoleAdmin, domain.RoleAgent, domain.RoleEmployee) {
		return nil, domain.ErrForbidden
	}
	if request.Status == "" {
		return nil, fmt.Errorf("status is required")
	}

	event := domain.TrackingEvent{
		Status:    request.Status,
		Location:  request.Location,
		Timestamp: time.Now(),
	}
	shipment, err := s.shipments.AppendTrackingEvent(ctx, id, event)
	if err != nil {
		return nil, err
	}
	log.Printf("Shipment status changed: TrackingNumber=%s, Status=%s", shipment.TrackingNumber, shipment.Status)

	s.notifier.NotifyStatusChanged(ctx, shipment, caller)
	s.publishEvent(events.ShipmentStatusChangedEvent, shipment, caller, event)

	return shipment, nil
}

// Reply appends a message to the shipment's reply thread, attributed to the
// caller, then notifies.
func (s *ShipmentService) Reply(ctx context.Context, caller *domain.Caller, id uuid.UUID, message string) (*domain.Shipment, error) {
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	var userID *uuid.UUID
	if caller != nil {
		callerID := caller.ID
		userID = &callerID
	}

	reply := domain.Reply{
		ID:        uuid.New(),
		Message:   message,
		UserID:    userID,
		Timestamp: time.Now(),
	}
	shipment, err := s.shipments.AppendReply(ctx, id, reply)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyReplyPosted(ctx, shipment, reply, caller)
	s.publishEvent(events.ShipmentReplyPostedEvent, shipment, caller, reply)

	return shipment, nil
}

// BackfillQRCodes provisions codes for every shipment missing one. Admin
// only, enforced at the route.
func (s *ShipmentService) BackfillQRCodes(ctx context.Context) (*domain.BackfillReport, error) {
	return s.qr.BackfillMissing(ctx)
}

func (s *ShipmentService) publishEvent(eventType events.EventType, shipment *domain.Shipment, caller *domain.Caller, payload interface{}) {
	if s.publisher == nil {
		return
	}

	event := events.ShipmentEvent{
		EventType:      eventType,
		ShipmentID:     shipment.ID,
		TrackingNumber: shipment.TrackingNumber,
		Status:         shipment.Status,
		Payload:        payload,
	}
	if caller != nil {
		actorID := caller.ID
		event.ActorID = &actorID
		event.ActorRole = caller.Role
	}

	if err := s.publisher.PublishShipmentEvent(event); err != nil {
		log.Printf("Shipment event publish error: %v", err)
	}
}
