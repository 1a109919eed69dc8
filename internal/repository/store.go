package repository

import (
	"context"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/google/uuid"
)

// ShipmentFilter narrows List results. Zero value lists everything, newest
// first.
type ShipmentFilter struct {
	SenderID  *uuid.UUID
	MissingQR bool
}

// ShipmentStore is the persistence contract for shipments and their embedded
// tracking-history and reply collections. AppendTrackingEvent must update the
// status column and append the history entry as one atomic mutation; no
// reader may observe the two disagreeing.
type ShipmentStore interface {
	Create(ctx context.Context, shipment *domain.Shipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	List(ctx context.Context, filter ShipmentFilter) ([]*domain.Shipment, error)
	Update(ctx context.Context, shipment *domain.Shipment) error
	AppendTrackingEvent(ctx context.Context, id uuid.UUID, event domain.TrackingEvent) (*domain.Shipment, error)
	AppendReply(ctx context.Context, id uuid.UUID, reply domain.Reply) (*domain.Shipment, error)
	// SetQRCodeURL persists a rendered QR code. It never overwrites an
	// existing code; the stale write is dropped and no error is returned.
	SetQRCodeURL(ctx context.Context, id uuid.UUID, qrCodeURL string) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserStore reads the account system's user records; this backend never
// writes them.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListByRoles(ctx context.Context, roles ...string) ([]*domain.User, error)
}

type FacilityStore interface {
	Create(ctx context.Context, facility *domain.Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Facility, error)
	Update(ctx context.Context, facility *domain.Facility) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type StatusStore interface {
	Create(ctx context.Context, status *domain.ShipmentStatus) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ShipmentStatus, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.ShipmentStatus, error)
	Update(ctx context.Context, status *domain.ShipmentStatus) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type MessageSlideStore interface {
	Create(ctx context.Context, slide *domain.MessageSlide) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageSlide, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.MessageSlide, error)
	Update(ctx context.Context, slide *domain.MessageSlide) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// BulkSetActive flips the active flag on every listed slide and reports
	// how many rows matched.
	BulkSetActive(ctx context.Context, ids []uuid.UUID, isActive bool) (int64, error)
}
