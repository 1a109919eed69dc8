package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryShipmentStore_CreateAndGet(t *testing.T) {
	store := NewMemoryShipmentStore()
	shipment := domain.NewShipment(domain.Shipment{TrackingNumber: "TRK001"})

	require.NoError(t, store.Create(context.Background(), shipment))

	byID, err := store.GetByID(context.Background(), shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRK001", byID.TrackingNumber)

	byNumber, err := store.GetByTrackingNumber(context.Background(), "TRK001")
	require.NoError(t, err)
	assert.Equal(t, shipment.ID, byNumber.ID)

	_, err = store.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryShipmentStore_DuplicateTrackingNumber(t *testing.T) {
	store := NewMemoryShipmentStore()

	require.NoError(t, store.Create(context.Background(), domain.NewShipment(domain.Shipment{TrackingNumber: "TRK001"})))

	err := store.Create(context.Background(), domain.NewShipment(domain.Shipment{TrackingNumber: "TRK001"}))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMemoryShipmentStore_ListFilters(t *testing.T) {
	store := NewMemoryShipmentStore()
	senderID := uuid.New()

	first := domain.NewShipment(domain.Shipment{TrackingNumber: "TRK001", SenderID: &senderID})
	first.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.Create(context.Background(), first))

	second := domain.NewShipment(domain.Shipment{TrackingNumber: "TRK002"})
	require.NoError(t, store.Create(context.Background(), second))
	require.NoError(t, store.SetQRCodeURL(context.Background(), second.ID, "data:image/png;base64,x"))

	all, err := store.List(context.Background(), ShipmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Newest first.
	assert.Equal(t, "TRK002", all[0].TrackingNumber)

	mine, err := store.List(context.Background(), ShipmentFilter{SenderID: &senderID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "TRK001", mine[0].TrackingNumber)

	missing, err := store.List(context.Background(), ShipmentFilter{MissingQR: true})
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "TRK001", missing[0].TrackingNumber)
}

func TestMemoryShipmentStore_UpdatePreservesManagedFields(t *testing.T) {
	store := NewMemoryShipmentStore()
	shipment := domain.NewShipment(domain.Shipment{TrackingNumber: "TRK001", Origin: "Lagos"})
	require.NoError(t, store.Create(context.Background(), shipment))

	_, err := store.AppendTrackingEvent(context.Background(), shipment.ID, domain.TrackingEvent{
		Status:    "in-transit",
		Location:  "Lagos Hub",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	edited := *shipment
	edited.Notes = "fragile"
	edited.Status = "delivered"
	edited.QRCodeURL = "should-not-stick"
	require.NoError(t, store.Update(context.Background(), &edited))

	stored, err := store.GetByID(context.Background(), shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "fragile", stored.Notes)
	assert.Equal(t, "in-transit", stored.Status)
	assert.Len(t, stored.TrackingHistory, 2)
	assert.Empty(t, stored.QRCodeURL)
}

func TestMemoryShipmentStore_AppendTrackingEventAtomicity(t *testing.T) {
	store := NewMemoryShipmentStore()
	shipment := domain.NewShipment(domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, store.Create(context.Background(), shipment))

	updated, err := store.AppendTrackingEvent(context.Background(), shipment.ID, domain.TrackingEvent{
		Status:    "delivered",
		Timestamp: time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, "delivered", updated.Status)
	assert.Equal(t, updated.Status, updated.TrackingHistory[len(updated.TrackingHistory)-1].Status)

	_, err = store.AppendTrackingEvent(context.Background(), uuid.New(), domain.TrackingEvent{Status: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryShipmentStore_SetQRCodeURLNeverOverwrites(t *testing.T) {
	store := NewMemoryShipmentStore()
	shipment := domain.NewShipment(domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, store.Create(context.Background(), shipment))

	require.NoError(t, store.SetQRCodeURL(context.Background(), shipment.ID, "first"))
	require.NoError(t, store.SetQRCodeURL(context.Background(), shipment.ID, "second"))

	stored, err := store.GetByID(context.Background(), shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", stored.QRCodeURL)
}

func TestMemoryShipmentStore_Delete(t *testing.T) {
	store := NewMemoryShipmentStore()
	shipment := domain.NewShipment(domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, store.Create(context.Background(), shipment))

	deleted, err := store.Delete(context.Background(), shipment.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Delete(context.Background(), shipment.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryUserStore_ListByRoles(t *testing.T) {
	store := NewMemoryUserStore(
		&domain.User{ID: uuid.New(), Email: "b@example.com", Role: domain.RoleAdmin},
		&domain.User{ID: uuid.New(), Email: "a@example.com", Role: domain.RoleEmployee},
		&domain.User{ID: uuid.New(), Email: "c@example.com", Role: domain.RoleClient},
	)

	users, err := store.ListByRoles(context.Background(), domain.RoleAdmin, domain.RoleEmployee)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "b@example.com", users[1].Email)
}

func TestMemoryMessageSlideStore_BulkSetActive(t *testing.T) {
	store := NewMemoryMessageSlideStore()

	first := &domain.MessageSlide{ID: uuid.New(), Title: "One", Message: "m", IsActive: true}
	second := &domain.MessageSlide{ID: uuid.New(), Title: "Two", Message: "m", IsActive: true}
	require.NoError(t, store.Create(context.Background(), first))
	require.NoError(t, store.Create(context.Background(), second))

	updated, err := store.BulkSetActive(context.Background(), []uuid.UUID{first.ID, uuid.New()}, false)

	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	stored, err := store.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := store.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Two", active[0].Title)
}
