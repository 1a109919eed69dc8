package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/gateway"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
)

// QRService provisions the trackable QR code for a shipment. It is a
// best-effort collaborator: callers get a bool, never an error, and an
// existing code is never regenerated.
type QRService struct {
	shipments       repository.ShipmentStore
	renderer        gateway.QRRenderer
	trackingBaseURL string
}

func NewQRService(shipments repository.ShipmentStore, renderer gateway.QRRenderer, trackingBaseURL string) *QRService {
	return &QRService{
		shipments:       shipments,
		renderer:        renderer,
		trackingBaseURL: trackingBaseURL,
	}
}

func (s *QRService) TrackingURL(trackingNumber string) string {
	return fmt.Sprintf("%s/app/trackshipment?tracking=%s", s.trackingBaseURL, trackingNumber)
}

// EnsureQRCode reports true when the shipment has a QR code, whether it
// already existed or was generated just now. Failures are logged and reported
// as false; they never reach the caller as an error.
func (s *QRService) EnsureQRCode(ctx context.Context, shipment *domain.Shipment) bool {
	if err := s.ensure(ctx, shipment); err != nil {
		log.Printf("Error generating QR code for %s: %v", shipment.TrackingNumber, err)
		return false
	}
	return true
}

func (s *QRService) ensure(ctx context.Context, shipment *domain.Shipment) error {
	if shipment.TrackingNumber == "" {
		return fmt.Errorf("shipment has no tracking number")
	}
	if shipment.QRCodeURL != "" {
		return nil
	}

	qrCodeURL, err := s.renderer.RenderQRCode(s.TrackingURL(shipment.TrackingNumber))
	if err != nil {
		return err
	}
	if err := s.shipments.SetQRCodeURL(ctx, shipment.ID, qrCodeURL); err != nil {
		return err
	}

	shipment.QRCodeURL = qrCodeURL
	log.Printf("QR code generated for shipment: %s", shipment.TrackingNumber)
	return nil
}

// BackfillAsync provisions a missing code without blocking the caller;
// the outcome only shows up in the logs.
func (s *QRService) BackfillAsync(shipment *domain.Shipment) {
	if shipment.QRCodeURL != "" {
		return
	}
	snapshot := *shipment
	go s.EnsureQRCode(context.Background(), &snapshot)
}

// BackfillMissing scans every shipment without a code and provisions each one
// independently; one failure never aborts the batch.
func (s *QRService) BackfillMissing(ctx context.Context) (*domain.BackfillReport, error) {
	missing, err := s.shipments.List(ctx, repository.ShipmentFilter{MissingQR: true})
	if err != nil {
		return nil, fmt.Errorf("missing-qr scan error: %v", err)
	}

	report := &domain.BackfillReport{TotalChecked: len(missing)}
	for _, shipment := range missing {
		if err := s.ensure(ctx, shipment); err != nil {
			report.Errors = append(report.Errors, domain.BackfillError{
				TrackingNumber: shipment.TrackingNumber,
				Error:          err.Error(),
			})
			continue
		}
		report.GeneratedCount++
	}
	return report, nil
}
