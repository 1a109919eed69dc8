package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/google/uuid"
)

type PostgresFacilityStore struct {
	db *sql.DB
}

func NewPostgresFacilityStore(db *sql.DB) *PostgresFacilityStore {
	return &PostgresFacilityStore{db: db}
}

const facilityColumns = `
	id, name, code, country, state, city, address, contact_person,
	contact_phone, contact_email, is_active, capacity, notes, created_at,
	updated_at`

func (r *PostgresFacilityStore) Create(ctx context.Context, facility *domain.Facility) error {
	query := `
		INSERT INTO facilities (` + facilityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		facility.ID,
		facility.Name,
		nullableString(facility.Code),
		facility.Country,
		facility.State,
		facility.City,
		facility.Address,
		facility.ContactPerson,
		facility.ContactPhone,
		facility.ContactEmail,
		facility.IsActive,
		facility.Capacity,
		facility.Notes,
		facility.CreatedAt,
		facility.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

func (r *PostgresFacilityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities WHERE id = $1`
	return scanFacility(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresFacilityStore) List(ctx context.Context, activeOnly bool) ([]*domain.Facility, error) {
	query := `SELECT ` + facilityColumns + ` FROM facilities`
	if activeOnly {
		query += ` WHERE is_active ORDER BY name ASC`
	} else {
		query += ` ORDER BY is_active DESC, name ASC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("facility list error: %v", err)
	}
	defer rows.Close()

	var facilities []*domain.Facility
	for rows.Next() {
		facility, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		facilities = append(facilities, facility)
	}
	return facilities, rows.Err()
}

func (r *PostgresFacilityStore) Update(ctx context.Context, facility *domain.Facility) error {
	query := `
		UPDATE facilities
		SET name = $2, code = $3, country = $4, state = $5, city = $6,
			address = $7, contact_person = $8, contact_phone = $9,
			contact_email = $10, is_active = $11, capacity = $12, notes = $13,
			updated_at = $14
		WHERE id = $1
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		facility.ID,
		facility.Name,
		nullableString(facility.Code),
		facility.Country,
		facility.State,
		facility.City,
		facility.Address,
		facility.ContactPerson,
		facility.ContactPhone,
		facility.ContactEmail,
		facility.IsActive,
		facility.Capacity,
		facility.Notes,
		facility.UpdatedAt,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return requireRowsAffected(result)
}

func (r *PostgresFacilityStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM facilities WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("facility delete error: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func scanFacility(row rowScanner) (*domain.Facility, error) {
	facility := &domain.Facility{}
	var code sql.NullString

	err := row.Scan(
		&facility.ID,
		&facility.Name,
		&code,
		&facility.Country,
		&facility.State,
		&facility.City,
		&facility.Address,
		&facility.ContactPerson,
		&facility.ContactPhone,
		&facility.ContactEmail,
		&facility.IsActive,
		&facility.Capacity,
		&facility.Notes,
		&facility.CreatedAt,
		&facility.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("facility scan error: %v", err)
	}
	if code.Valid {
		facility.Code = code.String
	}
	return facility, nil
}

type PostgresStatusStore struct {
	db *sql.DB
}

func NewPostgresStatusStore(db *sql.DB) *PostgresStatusStore {
	return &PostgresStatusStore{db: db}
}

const statusColumns = `
	id, name, code, description, color, category, display_order, is_active,
	created_at, updated_at`

func (r *PostgresStatusStore) Create(ctx context.Context, status *domain.ShipmentStatus) error {
	query := `
		INSERT INTO shipment_statuses (` + statusColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		status.ID,
		status.Name,
		nullableString(status.Code),
		status.Description,
		status.Color,
		status.Category,
		status.DisplayOrder,
		status.IsActive,
		status.CreatedAt,
		status.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

func (r *PostgresStatusStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShipmentStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM shipment_statuses WHERE id = $1`
	return scanStatus(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresStatusStore) List(ctx context.Context, activeOnly bool) ([]*domain.ShipmentStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM shipment_statuses`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY display_order ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("status list error: %v", err)
	}
	defer rows.Close()

	var statuses []*domain.ShipmentStatus
	for rows.Next() {
		status, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (r *PostgresStatusStore) Update(ctx context.Context, status *domain.ShipmentStatus) error {
	query := `
		UPDATE shipment_statuses
		SET name = $2, code = $3, description = $4, color = $5, category = $6,
			display_order = $7, is_active = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		status.ID,
		status.Name,
		nullableString(status.Code),
		status.Description,
		status.Color,
		status.Category,
		status.DisplayOrder,
		status.IsActive,
		status.UpdatedAt,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return requireRowsAffected(result)
}

func (r *PostgresStatusStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shipment_statuses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("status delete error: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func scanStatus(row rowScanner) (*domain.ShipmentStatus, error) {
	status := &domain.ShipmentStatus{}
	var code sql.NullString

	err := row.Scan(
		&status.ID,
		&status.Name,
		&code,
		&status.Description,
		&status.Color,
		&status.Category,
		&status.DisplayOrder,
		&status.IsActive,
		&status.CreatedAt,
		&status.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("status scan error: %v", err)
	}
	if code.Valid {
		status.Code = code.String
	}
	return status, nil
}
