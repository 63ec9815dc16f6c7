// Package repository provides database access for users.
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

// User is the users table model. Avatar fields are populated by queries that
// join the files table.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Provider     bool
	AvatarID     *int64
	AvatarPath   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository provides database operations for users.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new users repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `
	u.id, u.name, u.email, u.password_hash, u.provider, u.avatar_id,
	f.path, u.created_at, u.updated_at`

const userFrom = `
	FROM users u
	LEFT JOIN files f ON f.id = u.avatar_id`

// Create inserts a new user and returns the stored row.
func (r *Repository) Create(ctx context.Context, name, email, passwordHash string, provider bool) (*User, error) {
	var user User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, provider)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, provider, avatar_id, created_at, updated_at
	`, name, email, passwordHash, provider).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Provider, &user.AvatarID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user with its avatar path.
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+userColumns+userFrom+` WHERE u.id = $1`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email with its avatar path.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+userColumns+userFrom+` WHERE u.email = $1`, email)
	return scanUser(row)
}

// Update persists name, email, password hash and avatar reference.
func (r *Repository) Update(ctx context.Context, user *User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $2,
			email = $3,
			password_hash = $4,
			avatar_id = $5,
			updated_at = now()
		WHERE id = $1
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.AvatarID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Provider, &user.AvatarID, &user.AvatarPath,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
