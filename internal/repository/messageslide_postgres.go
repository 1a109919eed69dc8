package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Azeezfasasi/Tofar-Logistics-Backend/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresMessageSlideStore struct {
	db *sql.DB
}

func NewPostgresMessageSlideStore(db *sql.DB) *PostgresMessageSlideStore {
	return &PostgresMessageSlideStore{db: db}
}

const slideColumns = `
	id, title, message, is_active, display_order, icon, background_color,
	created_at, updated_at`

func (r *PostgresMessageSlideStore) Create(ctx context.Context, slide *domain.MessageSlide) error {
	query := `
		INSERT INTO message_slides (` + slideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		slide.ID,
		slide.Title,
		slide.Message,
		slide.IsActive,
		slide.DisplayOrder,
		slide.Icon,
		slide.BackgroundColor,
		slide.CreatedAt,
		slide.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

func (r *PostgresMessageSlideStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MessageSlide, error) {
	query := `SELECT ` + slideColumns + ` FROM message_slides WHERE id = $1`
	return scanSlide(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresMessageSlideStore) List(ctx context.Context, activeOnly bool) ([]*domain.MessageSlide, error) {
	query := `SELECT ` + slideColumns + ` FROM message_slides`
	if activeOnly {
		query += ` WHERE is_active ORDER BY display_order ASC, created_at DESC`
	} else {
		query += ` ORDER BY is_active DESC, display_order ASC, created_at DESC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("message slide list error: %v", err)
	}
	defer rows.Close()

	var slides []*domain.MessageSlide
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		slides = append(slides, slide)
	}
	return slides, rows.Err()
}

func (r *PostgresMessageSlideStore) Update(ctx context.Context, slide *domain.MessageSlide) error {
	query := `
		UPDATE message_slides
		SET title = $2, message = $3, is_active = $4, display_order = $5,
			icon = $6, background_color = $7, updated_at = $8
		WHERE id = $1
	`
	result, err := r.db.ExecContext(
		ctx,
		query,
		slide.ID,
		slide.Title,
		slide.Message,
		slide.IsActive,
		slide.DisplayOrder,
		slide.Icon,
		slide.BackgroundColor,
		slide.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRowsAffected(result)
}

func (r *PostgresMessageSlideStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM message_slides WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("message slide delete error: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *PostgresMessageSlideStore) BulkSetActive(ctx context.Context, ids []uuid.UUID, isActive bool) (int64, error) {
	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = id.String()
	}

	query := `UPDATE message_slides SET is_active = $2, updated_at = now() WHERE id = ANY($1::uuid[])`
	result, err := r.db.ExecContext(ctx, query, pq.Array(idStrings), isActive)
	if err != nil {
		return 0, fmt.Errorf("message slide bulk update error: %v", err)
	}
	return result.RowsAffected()
}

func scanSlide(row rowScanner) (*domain.MessageSlide, error) {
	slide := &domain.MessageSlide{}
	var icon sql.NullString

	err := row.Scan(
		&slide.ID,
		&slide.Title,
		&slide.Message,
		&slide.IsActive,
		&slide.DisplayOrder,
		&icon,
		&slide.BackgroundColor,
		&slide.CreatedAt,
		&slide.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("message slide scan error: %v", err)
	}
	if icon.Valid {
		slide.Icon = icon.String
	}
	return slide, nil
}
