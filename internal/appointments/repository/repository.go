// Package repository provides database access for appointments.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Appointment is the appointments table model. Provider and user fields are
// populated by queries that join the users and files tables.
type Appointment struct {
	ID         int64
	UserID     int64
	ProviderID int64
	Date       time.Time
	CanceledAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	ProviderName       string
	ProviderEmail      string
	ProviderAvatarID   *int64
	ProviderAvatarPath *string
	UserName           string
}

// Repository provides database operations for appointments.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new appointments repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new appointment. The partial unique index on
// (provider_id, date) for non-canceled rows is the authoritative
// reservation guard: a concurrent insert for the same slot fails with a
// unique violation, detectable via IsSlotTaken.
func (r *Repository) Create(ctx context.Context, userID, providerID int64, date time.Time) (*Appointment, error) {
	var appt Appointment
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (user_id, provider_id, date)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, provider_id, date, canceled_at, created_at, updated_at
	`, userID, providerID, date).Scan(
		&appt.ID, &appt.UserID, &appt.ProviderID, &appt.Date,
		&appt.CanceledAt, &appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return &appt, nil
}

// SlotTaken reports whether a live appointment already occupies the slot.
// This is only a fast-path check; the unique index remains the real guard.
func (r *Repository) SlotTaken(ctx context.Context, providerID int64, date time.Time) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE provider_id = $1 AND date = $2 AND canceled_at IS NULL
		)
	`, providerID, date).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return taken, nil
}

// GetByID retrieves an appointment with provider name/email, provider
// avatar and requester name joined in.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	var appt Appointment
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.user_id, a.provider_id, a.date, a.canceled_at,
			a.created_at, a.updated_at,
			p.name, p.email, p.avatar_id, f.path,
			u.name
		FROM appointments a
		JOIN users p ON p.id = a.provider_id
		JOIN users u ON u.id = a.user_id
		LEFT JOIN files f ON f.id = p.avatar_id
		WHERE a.id = $1
	`, id).Scan(
		&appt.ID, &appt.UserID, &appt.ProviderID, &appt.Date, &appt.CanceledAt,
		&appt.CreatedAt, &appt.UpdatedAt,
		&appt.ProviderName, &appt.ProviderEmail, &appt.ProviderAvatarID, &appt.ProviderAvatarPath,
		&appt.UserName,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// Cancel sets canceled_at exactly once. Returns false when the appointment
// was already canceled by a concurrent request.
func (r *Repository) Cancel(ctx context.Context, id int64, canceledAt time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments
		SET canceled_at = $2,
			updated_at = now()
		WHERE id = $1 AND canceled_at IS NULL
	`, id, canceledAt)
	if err != nil {
		return false, fmt.Errorf("cancel appointment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByUser returns a page of the requester's appointments ordered by slot
// ascending, with provider and avatar embedded.
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.provider_id, a.date, a.canceled_at,
			a.created_at, a.updated_at,
			p.name, p.email, p.avatar_id, f.path,
			u.name
		FROM appointments a
		JOIN users p ON p.id = a.provider_id
		JOIN users u ON u.id = a.user_id
		LEFT JOIN files f ON f.id = p.avatar_id
		WHERE a.user_id = $1
		ORDER BY a.date ASC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListProviderDay returns a provider's live appointments within [dayStart,
// dayEnd) ordered by slot, with requester names for the schedule view.
func (r *Repository) ListProviderDay(ctx context.Context, providerID int64, dayStart, dayEnd time.Time) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.user_id, a.provider_id, a.date, a.canceled_at,
			a.created_at, a.updated_at,
			p.name, p.email, p.avatar_id, f.path,
			u.name
		FROM appointments a
		JOIN users p ON p.id = a.provider_id
		JOIN users u ON u.id = a.user_id
		LEFT JOIN files f ON f.id = p.avatar_id
		WHERE a.provider_id = $1
			AND a.canceled_at IS NULL
			AND a.date >= $2
			AND a.date < $3
		ORDER BY a.date ASC
	`, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func scanAppointments(rows pgx.Rows) ([]Appointment, error) {
	var appts []Appointment
	for rows.Next() {
		var appt Appointment
		if err := rows.Scan(
			&appt.ID, &appt.UserID, &appt.ProviderID, &appt.Date, &appt.CanceledAt,
			&appt.CreatedAt, &appt.UpdatedAt,
			&appt.ProviderName, &appt.ProviderEmail, &appt.ProviderAvatarID, &appt.ProviderAvatarPath,
			&appt.UserName,
		); err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	return appts, rows.Err()
}

// IsSlotTaken reports whether err is the unique violation raised when two
// inserts race for the same provider slot.
func IsSlotTaken(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
