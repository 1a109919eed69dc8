package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/google/uuid"
)

// MemoryShipmentStore is a mutex-guarded ShipmentStore used by tests and
// local development. Mutations happen under one lock, which gives the same
// single-record atomicity the postgres store gets from a single UPDATE.
type MemoryShipmentStore struct {
	mu        sync.RWMutex
	shipments map[uuid.UUID]*domain.Shipment
}

func NewMemoryShipmentStore() *MemoryShipmentStore {
	return &MemoryShipmentStore{shipments: make(map[uuid.UUID]*domain.Shipment)}
}

func (s *MemoryShipmentStore) Create(ctx context.Context, shipment *domain.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.shipments {
		if existing.TrackingNumber == shipment.TrackingNumber {
			return domain.ErrConflict
		}
	}
	s.shipments[shipment.ID] = copyShipment(shipment)
	return nil
}

func (s *MemoryShipmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shipment, ok := s.shipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyShipment(shipment), nil
}

func (s *MemoryShipmentStore) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, shipment := range s.shipments {
		if shipment.TrackingNumber == trackingNumber {
			return copyShipment(shipment), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *MemoryShipmentStore) List(ctx context.Context, filter ShipmentFilter) ([]*domain.Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Shipment
	for _, shipment := range s.shipments {
		if filter.SenderID != nil {
			if shipment.SenderID == nil || *shipment.SenderID != *filter.SenderID {
				continue
			}
		}
		if filter.MissingQR && shipment.QRCodeURL != "" {
			continue
		}
		result = append(result, copyShipment(shipment))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryShipmentStore) Update(ctx context.Context, shipment *domain.Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.shipments[shipment.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range s.shipments {
		if id != shipment.ID && other.TrackingNumber == shipment.TrackingNumber {
			return domain.ErrConflict
		}
	}

	updated := copyShipment(shipment)
	// Status, history, replies and the QR code only move through their
	// dedicated mutations.
	updated.Status = existing.Status
	updated.TrackingHistory = existing.TrackingHistory
	updated.Replies = existing.Replies
	updated.QRCodeURL = existing.QRCodeURL
	s.shipments[shipment.ID] = updated
	return nil
}

func (s *MemoryShipmentStore) AppendTrackingEvent(ctx context.Context, id uuid.UUID, event domain.TrackingEvent) (*domain.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipment, ok := s.shipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	shipment.Status = event.Status
	shipment.TrackingHistory = append(shipment.TrackingHistory, event)
	shipment.UpdatedAt = event.Timestamp
	return copyShipment(shipment), nil
}

func (s *MemoryShipmentStore) AppendReply(ctx context.Context, id uuid.UUID, reply domain.Reply) (*domain.Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipment, ok := s.shipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	shipment.Replies = append(shipment.Replies, reply)
	shipment.UpdatedAt = reply.Timestamp
	return copyShipment(shipment), nil
}

func (s *MemoryShipmentStore) SetQRCodeURL(ctx context.Context, id uuid.UUID, qrCodeURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	shipment, ok := s.shipments[id]
	if !ok {
		return domain.ErrNotFound
	}
	if shipment.QRCodeURL != "" {
		return nil
	}
	shipment.QRCodeURL = qrCodeURL
	return nil
}

func (s *MemoryShipmentStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shipments[id]; !ok {
		return false, nil
	}
	delete(s.shipments, id)
	return true, nil
}

func copyShipment(shipment *domain.Shipment) *domain.Shipment {
	copied := *shipment
	copied.Items = append([]string(nil), shipment.Items...)
	copied.TrackingHistory = append([]domain.TrackingEvent(nil), shipment.TrackingHistory...)
	copied.Replies = append([]domain.Reply(nil), shipment.Replies...)
	return &copied
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func NewMemoryUserStore(users ...*domain.User) *MemoryUserStore {
	store := &MemoryUserStore{users: make(map[uuid.UUID]*domain.User)}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (s *MemoryUserStore) Add(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

func (s *MemoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *MemoryUserStore) ListByRoles(ctx context.Context, roles ...string) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.User
	for _, user := range s.users {
		for _, role := range roles {
			if user.Role == role {
				copied := *user
				result = append(result, &copied)
				break
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Email < result[j].Email
	})
	return result, nil
}

type MemoryMessageSlideStore struct {
	mu     sync.RWMutex
	slides map[uuid.UUID]*domain.MessageSlide
}

func NewMemoryMessageSlideStore() *MemoryMessageSlideStore {
	return &MemoryMessageSlideStore{slides: make(map[uuid.UUID]*domain.MessageSlide)}
}

func (s *MemoryMessageSlideStore) Create(ctx context.Context, slide *domain.MessageSlide) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *slide
	s.slides[slide.ID] = &copied
	return nil
}

func (s *MemoryMessageSlideStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageSlide, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slide, ok := s.slides[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *slide
	return &copied, nil
}

func (s *MemoryMessageSlideStore) List(ctx context.Context, activeOnly bool) ([]*domain.MessageSlide, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.MessageSlide
	for _, slide := range s.slides {
		if activeOnly && !slide.IsActive {
			continue
		}
		copied := *slide
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !activeOnly && a.IsActive != b.IsActive {
			return a.IsActive
		}
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return result, nil
}

func (s *MemoryMessageSlideStore) Update(ctx context.Context, slide *domain.MessageSlide) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slides[slide.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *slide
	s.slides[slide.ID] = &copied
	return nil
}

func (s *MemoryMessageSlideStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slides[id]; !ok {
		return false, nil
	}
	delete(s.slides, id)
	return true, nil
}

func (s *MemoryMessageSlideStore) BulkSetActive(ctx context.Context, ids []uuid.UUID, isActive bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched int64
	for _, id := range ids {
		if slide, ok := s.slides[id]; ok {
			slide.IsActive = isActive
			slide.UpdatedAt = time.Now()
			matched++
		}
	}
	return matched, nil
}

type MemoryFacilityStore struct {
	mu         sync.RWMutex
	facilities map[uuid.UUID]*domain.Facility
}

func NewMemoryFacilityStore() *MemoryFacilityStore {
	return &MemoryFacilityStore{facilities: make(map[uuid.UUID]*domain.Facility)}
}

func (s *MemoryFacilityStore) Create(ctx context.Context, facility *domain.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.facilityNameOrCodeTaken(facility, uuid.Nil) {
		return domain.ErrConflict
	}
	copied := *facility
	s.facilities[facility.ID] = &copied
	return nil
}

func (s *MemoryFacilityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	facility, ok := s.facilities[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *facility
	return &copied, nil
}

func (s *MemoryFacilityStore) List(ctx context.Context, activeOnly bool) ([]*domain.Facility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Facility
	for _, facility := range s.facilities {
		if activeOnly && !facility.IsActive {
			continue
		}
		copied := *facility
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !activeOnly && a.IsActive != b.IsActive {
			return a.IsActive
		}
		return a.Name < b.Name
	})
	return result, nil
}

func (s *MemoryFacilityStore) Update(ctx context.Context, facility *domain.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.facilities[facility.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.facilityNameOrCodeTaken(facility, facility.ID) {
		return domain.ErrConflict
	}
	copied := *facility
	s.facilities[facility.ID] = &copied
	return nil
}

func (s *MemoryFacilityStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.facilities[id]; !ok {
		return false, nil
	}
	delete(s.facilities, id)
	return true, nil
}

func (s *MemoryFacilityStore) facilityNameOrCodeTaken(facility *domain.Facility, selfID uuid.UUID) bool {
	for id, other := range s.facilities {
		if id == selfID {
			continue
		}
		if other.Name == facility.Name {
			return true
		}
		if facility.Code != "" && other.Code == facility.Code {
			return true
		}
	}
	return false
}

type MemoryStatusStore struct {
	mu       sync.RWMutex
	statuses map[uuid.UUID]*domain.ShipmentStatus
}

func NewMemoryStatusStore() *MemoryStatusStore {
	return &MemoryStatusStore{statuses: make(map[uuid.UUID]*domain.ShipmentStatus)}
}

func (s *MemoryStatusStore) Create(ctx context.Context, status *domain.ShipmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statusNameTaken(status, uuid.Nil) {
		return domain.ErrConflict
	}
	copied := *status
	s.statuses[status.ID] = &copied
	return nil
}

func (s *MemoryStatusStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShipmentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.statuses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *status
	return &copied, nil
}

func (s *MemoryStatusStore) List(ctx context.Context, activeOnly bool) ([]*domain.ShipmentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ShipmentStatus
	for _, status := range s.statuses {
		if activeOnly && !status.IsActive {
			continue
		}
		copied := *status
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		return a.Name < b.Name
	})
	return result, nil
}

func (s *MemoryStatusStore) Update(ctx context.Context, status *domain.ShipmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.statuses[status.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.statusNameTaken(status, status.ID) {
		return domain.ErrConflict
	}
	copied := *status
	s.statuses[status.ID] = &copied
	return nil
}

func (s *MemoryStatusStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.statuses[id]; !ok {
		return false, nil
	}
	delete(s.statuses, id)
	return true, nil
}

func (s *MemoryStatusStore) statusNameTaken(status *domain.ShipmentStatus, selfID uuid.UUID) bool {
	for id, other := range s.statuses {
		if id == selfID {
			continue
		}
		if other.Name == status.Name {
			return true
		}
	}
	return false
}
