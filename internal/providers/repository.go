package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Provider is a users row restricted to provider accounts, with the avatar
// file joined in.
type Provider struct {
	ID         int64
	Name       string
	Email      string
	AvatarID   *int64
	AvatarPath *string
}

// Repository provides database access for the provider catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new providers repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns every provider account ordered by name.
func (r *Repository) List(ctx context.Context) ([]Provider, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.avatar_id, f.path
		FROM users u
		LEFT JOIN files f ON f.id = u.avatar_id
		WHERE u.provider = true
		ORDER BY u.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	defer rows.Close()

	var items []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.AvatarID, &p.AvatarPath); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Exists reports whether the id belongs to a provider account.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND provider = true)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check provider: %w", err)
	}
	return exists, nil
}

// BookedSlots returns the provider's live appointment times within
// [dayStart, dayEnd).
func (r *Repository) BookedSlots(ctx context.Context, providerID int64, dayStart, dayEnd time.Time) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date
		FROM appointments
		WHERE provider_id = $1
			AND canceled_at IS NULL
			AND date >= $2
			AND date < $3
	`, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list booked slots: %w", err)
	}
	defer rows.Close()

	var slots []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		slots = append(slots, t)
	}
	return slots, rows.Err()
}
