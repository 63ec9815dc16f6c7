package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Notification is the notifications table model. Rows are append-only; only
// the read flag is ever mutated.
type Notification struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"providerId"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Repository provides database operations for notifications.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new notifications repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert appends a notification record.
func (r *Repository) Insert(ctx context.Context, providerID int64, content string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications (provider_id, content)
		VALUES ($1, $2)
	`, providerID, content)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByProvider returns the provider's notifications, newest first.
func (r *Repository) ListByProvider(ctx context.Context, providerID int64, limit int) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, provider_id, content, read, created_at
		FROM notifications
		WHERE provider_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, providerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var items []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.ProviderID, &n.Content, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// MarkRead flips the read flag for a provider's own notification. When no
// matching row exists the error is pgx.ErrNoRows.
func (r *Repository) MarkRead(ctx context.Context, id, providerID int64) (*Notification, error) {
	var n Notification
	err := r.pool.QueryRow(ctx, `
		UPDATE notifications
		SET read = true
		WHERE id = $1 AND provider_id = $2
		RETURNING id, provider_id, content, read, created_at
	`, id, providerID).Scan(&n.ID, &n.ProviderID, &n.Content, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
