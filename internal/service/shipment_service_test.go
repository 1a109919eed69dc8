package service

import (
	"context"
	"testing"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/events"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/gateway"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/messaging"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shipmentFixture struct {
	service   *ShipmentService
	store     *repository.MemoryShipmentStore
	users     *repository.MemoryUserStore
	mailer    *gateway.MockMailSender
	renderer  *gateway.MockQRRenderer
	publisher *messaging.MemoryPublisher
}

func newShipmentFixture(users ...*domain.User) *shipmentFixture {
	store := repository.NewMemoryShipmentStore()
	userStore := repository.NewMemoryUserStore(users...)
	mailer := gateway.NewMockMailSender()
	renderer := gateway.NewMockQRRenderer()
	publisher := messaging.NewMemoryPublisher()

	qr := NewQRService(store, renderer, testTrackingBaseURL)
	notifier := NewNotificationService(userStore, mailer, testTrackingBaseURL, testAdminPanelURL)

	return &shipmentFixture{
		service:   NewShipmentService(store, qr, notifier, publisher),
		store:     store,
		users:     userStore,
		mailer:    mailer,
		renderer:  renderer,
		publisher: publisher,
	}
}

func adminCaller() *domain.Caller {
	return &domain.Caller{ID: uuid.New(), Email: "admin@example.com", Role: domain.RoleAdmin}
}

func TestShipmentService_Create(t *testing.T) {
	f := newShipmentFixture()

	shipment, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{
		TrackingNumber: "TRK001",
		Origin:         "Lagos",
		Destination:    "Abuja",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, shipment.Status)
	require.Len(t, shipment.TrackingHistory, 1)
	assert.Equal(t, domain.StatusPending, shipment.TrackingHistory[0].Status)
	assert.Equal(t, "Lagos", shipment.TrackingHistory[0].Location)
	assert.NotEmpty(t, shipment.QRCodeURL)

	require.Len(t, f.publisher.Events, 1)
	assert.Equal(t, events.ShipmentCreatedEvent, f.publisher.Events[0].EventType)
}

func TestShipmentService_Create_DuplicateTrackingNumber(t *testing.T) {
	f := newShipmentFixture()
	caller := adminCaller()

	_, err := f.service.Create(context.Background(), caller, domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), caller, domain.Shipment{TrackingNumber: "TRK001"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestShipmentService_Create_SurvivesQRFailure(t *testing.T) {
	f := newShipmentFixture()
	f.renderer.Fail = true

	shipment, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001"})

	require.NoError(t, err)
	assert.Empty(t, shipment.QRCodeURL)

	stored, err := f.store.GetByID(context.Background(), shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRK001", stored.TrackingNumber)
}

func TestShipmentService_ListAll_RequiresStaffRole(t *testing.T) {
	f := newShipmentFixture()

	client := &domain.Caller{ID: uuid.New(), Role: domain.RoleClient}
	_, err := f.service.ListAll(context.Background(), client)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	agent := &domain.Caller{ID: uuid.New(), Role: domain.RoleAgent}
	_, err = f.service.ListAll(context.Background(), agent)
	assert.NoError(t, err)
}

func TestShipmentService_ListMine_FiltersBySender(t *testing.T) {
	f := newShipmentFixture()
	caller := &domain.Caller{ID: uuid.New(), Role: domain.RoleClient}
	other := uuid.New()

	_, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001", SenderID: &caller.ID})
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK002", SenderID: &other})
	require.NoError(t, err)

	mine, err := f.service.ListMine(context.Background(), caller)

	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "TRK001", mine[0].TrackingNumber)
}

func TestShipmentService_TrackByNumber(t *testing.T) {
	f := newShipmentFixture()
	_, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, err)

	shipment, err := f.service.TrackByNumber(context.Background(), "TRK001")
	require.NoError(t, err)
	assert.Equal(t, "TRK001", shipment.TrackingNumber)

	_, err = f.service.TrackByNumber(context.Background(), "TRK999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipmentService_ChangeStatus(t *testing.T) {
	f := newShipmentFixture()
	created, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001", Origin: "Lagos"})
	require.NoError(t, err)

	updated, err := f.service.ChangeStatus(context.Background(), adminCaller(), created.ID, domain.ChangeStatusRequest{
		Status:   "in-transit",
		Location: "Lagos Hub",
	})

	require.NoError(t, err)
	assert.Equal(t, "in-transit", updated.Status)
	require.Len(t, updated.TrackingHistory, 2)
	assert.Equal(t, "in-transit", updated.TrackingHistory[1].Status)
	assert.Equal(t, "Lagos Hub", updated.TrackingHistory[1].Location)
	assert.Equal(t, updated.Status, updated.TrackingHistory[len(updated.TrackingHistory)-1].Status)
}

func TestShipmentService_ChangeStatus_Validation(t *testing.T) {
	f := newShipmentFixture()
	created, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, err)

	_, err = f.service.ChangeStatus(context.Background(), adminCaller(), created.ID, domain.ChangeStatusRequest{})
	assert.Error(t, err)

	client := &domain.Caller{ID: uuid.New(), Role: domain.RoleClient}
	_, err = f.service.ChangeStatus(context.Background(), client, created.ID, domain.ChangeStatusRequest{Status: "in-transit"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestShipmentService_ChangeStatus_NotFound(t *testing.T) {
	f := newShipmentFixture()

	_, err := f.service.ChangeStatus(context.Background(), adminCaller(), uuid.New(), domain.ChangeStatusRequest{Status: "in-transit"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShipmentService_Edit_AdminOrOwnerOnly(t *testing.T) {
	f := newShipmentFixture()
	owner := &domain.Caller{ID: uuid.New(), Role: domain.RoleClient}
	created, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{
		TrackingNumber: "TRK001",
		SenderID:       &owner.ID,
		Notes:          "original",
	})
	require.NoError(t, err)

	stranger := &domain.Caller{ID: uuid.New(), Role: domain.RoleClient}
	newNotes := "changed"
	_, err = f.service.Edit(context.Background(), stranger, created.ID, domain.ShipmentPatch{Notes: &newNotes})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	stored, err := f.store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Notes)

	updated, err := f.service.Edit(context.Background(), owner, created.ID, domain.ShipmentPatch{Notes: &newNotes})
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Notes)
}

func TestShipmentService_Edit_PreservesStatusAndHistory(t *testing.T) {
	f := newShipmentFixture()
	created, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001", Origin: "Lagos"})
	require.NoError(t, err)

	_, err = f.service.ChangeStatus(context.Background(), adminCaller(), created.ID, domain.ChangeStatusRequest{Status: "in-transit", Location: "Lagos Hub"})
	require.NoError(t, err)

	newOrigin := "Ibadan"
	updated, err := f.service.Edit(context.Background(), adminCaller(), created.ID, domain.ShipmentPatch{Origin: &newOrigin})
	require.NoError(t, err)

	assert.Equal(t, "Ibadan", updated.Origin)
	assert.Equal(t, "in-transit", updated.Status)
	assert.Len(t, updated.TrackingHistory, 2)
}

func TestShipmentService_Reply(t *testing.T) {
	f := newShipmentFixture()
	created, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, err)

	caller := &domain.Caller{ID: uuid.New(), Email: "client@example.com", Role: domain.RoleClient}
	updated, err := f.service.Reply(context.Background(), caller, created.ID, "Where is my package?")

	require.NoError(t, err)
	require.Len(t, updated.Replies, 1)
	assert.Equal(t, "Where is my package?", updated.Replies[0].Message)
	require.NotNil(t, updated.Replies[0].UserID)
	assert.Equal(t, caller.ID, *updated.Replies[0].UserID)

	_, err = f.service.Reply(context.Background(), caller, created.ID, "")
	assert.Error(t, err)
}

func TestShipmentService_Delete(t *testing.T) {
	f := newShipmentFixture()
	created, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, err)

	deleted, err := f.service.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.service.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestShipmentService_BackfillQRCodes(t *testing.T) {
	f := newShipmentFixture()
	f.renderer.Fail = true
	_, err := f.service.Create(context.Background(), adminCaller(), domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, err)
	f.renderer.Fail = false

	report, err := f.service.BackfillQRCodes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalChecked)
	assert.Equal(t, 1, report.GeneratedCount)
	assert.Empty(t, report.Errors)
}

func TestShipmentService_EventsCarryActor(t *testing.T) {
	f := newShipmentFixture()
	caller := adminCaller()

	created, err := f.service.Create(context.Background(), caller, domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, err)

	_, err = f.service.ChangeStatus(context.Background(), caller, created.ID, domain.ChangeStatusRequest{Status: "delivered"})
	require.NoError(t, err)

	require.Len(t, f.publisher.Events, 2)
	statusEvent := f.publisher.Events[1]
	assert.Equal(t, events.ShipmentStatusChangedEvent, statusEvent.EventType)
	assert.Equal(t, "delivered", statusEvent.Status)
	require.NotNil(t, statusEvent.ActorID)
	assert.Equal(t, caller.ID, *statusEvent.ActorID)
	assert.Equal(t, domain.RoleAdmin, statusEvent.ActorRole)
}
