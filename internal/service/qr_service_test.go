package service

import (
	"context"
	"testing"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/gateway"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTrackingBaseURL = "https://cargorealmandlogistics.com"

func newQRFixture(t *testing.T) (*QRService, *repository.MemoryShipmentStore, *gateway.MockQRRenderer) {
	t.Helper()
	store := repository.NewMemoryShipmentStore()
	renderer := gateway.NewMockQRRenderer()
	return NewQRService(store, renderer, testTrackingBaseURL), store, renderer
}

func seedShipment(t *testing.T, store *repository.MemoryShipmentStore, draft domain.Shipment) *domain.Shipment {
	t.Helper()
	shipment := domain.NewShipment(draft)
	require.NoError(t, store.Create(context.Background(), shipment))
	return shipment
}

func TestQRService_TrackingURL(t *testing.T) {
	qr, _, _ := newQRFixture(t)

	url := qr.TrackingURL("TRK001")

	assert.Equal(t, testTrackingBaseURL+"/app/trackshipment?tracking=TRK001", url)
}

func TestQRService_EnsureQRCode_GeneratesOnce(t *testing.T) {
	qr, store, renderer := newQRFixture(t)
	shipment := seedShipment(t, store, domain.Shipment{TrackingNumber: "TRK001"})

	ok := qr.EnsureQRCode(context.Background(), shipment)

	require.True(t, ok)
	assert.NotEmpty(t, shipment.QRCodeURL)

	stored, err := store.GetByID(context.Background(), shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, shipment.QRCodeURL, stored.QRCodeURL)

	// A second call sees the existing code and renders nothing new.
	ok = qr.EnsureQRCode(context.Background(), stored)
	require.True(t, ok)
	assert.Equal(t, 1, renderer.RenderedCount())
}

func TestQRService_EnsureQRCode_NoTrackingNumber(t *testing.T) {
	qr, _, renderer := newQRFixture(t)
	shipment := &domain.Shipment{}

	ok := qr.EnsureQRCode(context.Background(), shipment)

	assert.False(t, ok)
	assert.Zero(t, renderer.RenderedCount())
}

func TestQRService_EnsureQRCode_RendererFailure(t *testing.T) {
	qr, store, renderer := newQRFixture(t)
	renderer.Fail = true
	shipment := seedShipment(t, store, domain.Shipment{TrackingNumber: "TRK001"})

	ok := qr.EnsureQRCode(context.Background(), shipment)

	assert.False(t, ok)
	assert.Empty(t, shipment.QRCodeURL)

	stored, err := store.GetByID(context.Background(), shipment.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.QRCodeURL)
}

func TestQRService_BackfillMissing(t *testing.T) {
	qr, store, renderer := newQRFixture(t)

	seedShipment(t, store, domain.Shipment{TrackingNumber: "TRK001"})
	broken := seedShipment(t, store, domain.Shipment{TrackingNumber: "TRK002"})
	seedShipment(t, store, domain.Shipment{TrackingNumber: "TRK003"})
	renderer.FailFor[qr.TrackingURL(broken.TrackingNumber)] = true

	report, err := qr.BackfillMissing(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalChecked)
	assert.Equal(t, 2, report.GeneratedCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "TRK002", report.Errors[0].TrackingNumber)
}

func TestQRService_BackfillMissing_SkipsProvisioned(t *testing.T) {
	qr, store, _ := newQRFixture(t)
	shipment := seedShipment(t, store, domain.Shipment{TrackingNumber: "TRK001"})
	require.NoError(t, store.SetQRCodeURL(context.Background(), shipment.ID, "data:image/png;base64,existing"))

	report, err := qr.BackfillMissing(context.Background())

	require.NoError(t, err)
	assert.Zero(t, report.TotalChecked)
	assert.Zero(t, report.GeneratedCount)
}

func TestQRService_BackfillAsync_FillsMissingCode(t *testing.T) {
	qr, store, _ := newQRFixture(t)
	shipment := seedShipment(t, store, domain.Shipment{TrackingNumber: "TRK001"})

	qr.BackfillAsync(shipment)

	assert.Eventually(t, func() bool {
		stored, err := store.GetByID(context.Background(), shipment.ID)
		return err == nil && stored.QRCodeURL != ""
	}, time.Second, 10*time.Millisecond)
}

func TestQRService_BackfillAsync_SkipsProvisioned(t *testing.T) {
	qr, _, renderer := newQRFixture(t)
	shipment := &domain.Shipment{
		TrackingNumber: "TRK001",
		QRCodeURL:      "data:image/png;base64,existing",
	}

	// A shipment that already carries a code returns before any goroutine
	// is spawned, so the renderer count is stable immediately.
	qr.BackfillAsync(shipment)

	assert.Zero(t, renderer.RenderedCount())
}
