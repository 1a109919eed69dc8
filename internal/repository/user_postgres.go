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

type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (r *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, email, full_name, role FROM users WHERE id = $1`

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("user retrieval error: %v", err)
	}
	return user, nil
}

func (r *PostgresUserStore) ListByRoles(ctx context.Context, roles ...string) ([]*domain.User, error) {
	query := `SELECT id, email, full_name, role FROM users WHERE role = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(roles))
	if err != nil {
		return nil, fmt.Errorf("user list error: %v", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		if err := rows.Scan(&user.ID, &user.Email, &user.FullName, &user.Role); err != nil {
			return nil, fmt.Errorf("user scan error: %v", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
