package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const shipmentColumns = `
	id, tracking_number, sender_id, sender_name, sender_phone, sender_email,
	sender_address, recipient_name, recipient_email, recipient_phone,
	recipient_address, origin, destination, status, items, weight, length,
	width, height, volume, cost, shipment_date, delivery_date, notes,
	shipment_pieces, shipment_type, shipment_purpose, shipment_facility,
	qr_code_url, tracking_history, replies, created_at, updated_at`

type PostgresShipmentStore struct {
	db *sql.DB
}

func NewPostgresShipmentStore(db *sql.DB) *PostgresShipmentStore {
	return &PostgresShipmentStore{db: db}
}

func (r *PostgresShipmentStore) Create(ctx context.Context, shipment *domain.Shipment) error {
	itemsJSON, historyJSON, repliesJSON, err := marshalShipmentCollections(shipment)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30, $31, $32, $33)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		shipment.ID,
		shipment.TrackingNumber,
		shipment.SenderID,
		shipment.SenderName,
		shipment.SenderPhone,
		shipment.SenderEmail,
		shipment.SenderAddress,
		shipment.RecipientName,
		shipment.RecipientEmail,
		shipment.RecipientPhone,
		shipment.RecipientAddress,
		shipment.Origin,
		shipment.Destination,
		shipment.Status,
		itemsJSON,
		shipment.Weight,
		shipment.Length,
		shipment.Width,
		shipment.Height,
		shipment.Volume,
		shipment.Cost,
		shipment.ShipmentDate,
		shipment.DeliveryDate,
		shipment.Notes,
		shipment.ShipmentPieces,
		shipment.ShipmentType,
		shipment.ShipmentPurpose,
		shipment.ShipmentFacility,
		nullableString(shipment.QRCodeURL),
		historyJSON,
		repliesJSON,
		shipment.CreatedAt,
		shipment.UpdatedAt,
	)

	return mapUniqueViolation(err)
}

func (r *PostgresShipmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	return scanShipment(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresShipmentStore) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE tracking_number = $1`
	return scanShipment(r.db.QueryRowContext(ctx, query, trackingNumber))
}

func (r *PostgresShipmentStore) List(ctx context.Context, filter ShipmentFilter) ([]*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments`
	var args []interface{}

	switch {
	case filter.SenderID != nil:
		query += ` WHERE sender_id = $1`
		args = append(args, *filter.SenderID)
	case filter.MissingQR:
		query += ` WHERE qr_code_url IS NULL OR qr_code_url = ''`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("shipment list error: %v", err)
	}
	defer rows.Close()

	var shipments []*domain.Shipment
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}
	return shipments, rows.Err()
}

func (r *PostgresShipmentStore) Update(ctx context.Context, shipment *domain.Shipment) error {
	itemsJSON, _, _, err := marshalShipmentCollections(shipment)
	if err != nil {
		return err
	}

	query := `
		UPDATE shipments
		SET tracking_number = $2, sender_id = $3, sender_name = $4,
			sender_phone = $5, sender_email = $6, sender_address = $7,
			recipient_name = $8, recipient_email = $9, recipient_phone = $10,
			recipient_address = $11, origin = $12, destination = $13,
			items = $14, weight = $15, length = $16, width = $17,
			height = $18, volume = $19, cost = $20, shipment_date = $21,
			delivery_date = $22, notes = $23, shipment_pieces = $24,
			shipment_type = $25, shipment_purpose = $26,
			shipment_facility = $27, updated_at = $28
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		shipment.ID,
		shipment.TrackingNumber,
		shipment.SenderID,
		shipment.SenderName,
		shipment.SenderPhone,
		shipment.SenderEmail,
		shipment.SenderAddress,
		shipment.RecipientName,
		shipment.RecipientEmail,
		shipment.RecipientPhone,
		shipment.RecipientAddress,
		shipment.Origin,
		shipment.Destination,
		itemsJSON,
		shipment.Weight,
		shipment.Length,
		shipment.Width,
		shipment.Height,
		shipment.Volume,
		shipment.Cost,
		shipment.ShipmentDate,
		shipment.DeliveryDate,
		shipment.Notes,
		shipment.ShipmentPieces,
		shipment.ShipmentType,
		shipment.ShipmentPurpose,
		shipment.ShipmentFacility,
		shipment.UpdatedAt,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return requireRowsAffected(result)
}

// AppendTrackingEvent sets the status column and appends the history entry in
// a single UPDATE, so the invariant holds even under concurrent writers.
func (r *PostgresShipmentStore) AppendTrackingEvent(ctx context.Context, id uuid.UUID, event domain.TrackingEvent) (*domain.Shipment, error) {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("tracking event serialization error: %v", err)
	}

	query := `
		UPDATE shipments
		SET status = $2,
			tracking_history = tracking_history || $3::jsonb,
			updated_at = $4
		WHERE id = $1
		RETURNING ` + shipmentColumns

	return scanShipment(r.db.QueryRowContext(ctx, query, id, event.Status, eventJSON, event.Timestamp))
}

func (r *PostgresShipmentStore) AppendReply(ctx context.Context, id uuid.UUID, reply domain.Reply) (*domain.Shipment, error) {
	replyJSON, err := json.Marshal(reply)
	if err != nil {
		return nil, fmt.Errorf("reply serialization error: %v", err)
	}

	query := `
		UPDATE shipments
		SET replies = replies || $2::jsonb, updated_at = $3
		WHERE id = $1
		RETURNING ` + shipmentColumns

	return scanShipment(r.db.QueryRowContext(ctx, query, id, replyJSON, reply.Timestamp))
}

func (r *PostgresShipmentStore) SetQRCodeURL(ctx context.Context, id uuid.UUID, qrCodeURL string) error {
	// The guard keeps an existing code from ever being overwritten.
	query := `
		UPDATE shipments
		SET qr_code_url = $2
		WHERE id = $1 AND (qr_code_url IS NULL OR qr_code_url = '')
	`
	_, err := r.db.ExecContext(ctx, query, id, qrCodeURL)
	if err != nil {
		return fmt.Errorf("qr code update error: %v", err)
	}
	return nil
}

func (r *PostgresShipmentStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("shipment delete error: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShipment(row rowScanner) (*domain.Shipment, error) {
	shipment := &domain.Shipment{}
	var (
		itemsJSON   []byte
		historyJSON []byte
		repliesJSON []byte
		qrCodeURL   sql.NullString
	)

	err := row.Scan(
		&shipment.ID,
		&shipment.TrackingNumber,
		&shipment.SenderID,
		&shipment.SenderName,
		&shipment.SenderPhone,
		&shipment.SenderEmail,
		&shipment.SenderAddress,
		&shipment.RecipientName,
		&shipment.RecipientEmail,
		&shipment.RecipientPhone,
		&shipment.RecipientAddress,
		&shipment.Origin,
		&shipment.Destination,
		&shipment.Status,
		&itemsJSON,
		&shipment.Weight,
		&shipment.Length,
		&shipment.Width,
		&shipment.Height,
		&shipment.Volume,
		&shipment.Cost,
		&shipment.ShipmentDate,
		&shipment.DeliveryDate,
		&shipment.Notes,
		&shipment.ShipmentPieces,
		&shipment.ShipmentType,
		&shipment.ShipmentPurpose,
		&shipment.ShipmentFacility,
		&qrCodeURL,
		&historyJSON,
		&repliesJSON,
		&shipment.CreatedAt,
		&shipment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("shipment scan error: %v", err)
	}

	if qrCodeURL.Valid {
		shipment.QRCodeURL = qrCodeURL.String
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &shipment.Items); err != nil {
			return nil, fmt.Errorf("items deserialization error: %v", err)
		}
	}
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &shipment.TrackingHistory); err != nil {
			return nil, fmt.Errorf("tracking history deserialization error: %v", err)
		}
	}
	if len(repliesJSON) > 0 {
		if err := json.Unmarshal(repliesJSON, &shipment.Replies); err != nil {
			return nil, fmt.Errorf("replies deserialization error: %v", err)
		}
	}

	return shipment, nil
}

func marshalShipmentCollections(shipment *domain.Shipment) (items, history, replies []byte, err error) {
	if shipment.Items == nil {
		shipment.Items = []string{}
	}
	if shipment.TrackingHistory == nil {
		shipment.TrackingHistory = []domain.TrackingEvent{}
	}
	if shipment.Replies == nil {
		shipment.Replies = []domain.Reply{}
	}

	if items, err = json.Marshal(shipment.Items); err != nil {
		return nil, nil, nil, fmt.Errorf("items serialization error: %v", err)
	}
	if history, err = json.Marshal(shipment.TrackingHistory); err != nil {
		return nil, nil, nil, fmt.Errorf("tracking history serialization error: %v", err)
	}
	if replies, err = json.Marshal(shipment.Replies); err != nil {
		return nil, nil, nil, fmt.Errorf("replies serialization error: %v", err)
	}
	return items, history, replies, nil
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}

func requireRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
