package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/config"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/repository"
	_ "github.com/lib/pq"
)

// Seeds an initial tracking-history entry for shipments created before
// history tracking existed, so their status and history agree again.
func main() {
	log.Println("🚀 Starting tracking history backfill...")

	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Database open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Database ping error: %v", err)
	}

	store := repository.NewPostgresShipmentStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	updated, checked, err := backfillTrackingHistory(ctx, store)
	if err != nil {
		log.Fatalf("Backfill error: %v", err)
	}

	log.Printf("✅ Backfill complete: %d of %d shipments seeded", updated, checked)
}

func backfillTrackingHistory(ctx context.Context, store repository.ShipmentStore) (int, int, error) {
	shipments, err := store.List(ctx, repository.ShipmentFilter{})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list shipments: %v", err)
	}

	updated := 0
	for _, shipment := range shipments {
		if len(shipment.TrackingHistory) > 0 {
			continue
		}

		event := domain.TrackingEvent{
			Status:    shipment.Status,
			Location:  shipment.Origin,
			Timestamp: shipment.CreatedAt,
		}
		if _, err := store.AppendTrackingEvent(ctx, shipment.ID, event); err != nil {
			log.Printf("Failed to seed history for %s: %v", shipment.TrackingNumber, err)
			continue
		}

		log.Printf("Seeded initial history for %s (%s)", shipment.TrackingNumber, shipment.Status)
		updated++
	}

	return updated, len(shipments), nil
}
