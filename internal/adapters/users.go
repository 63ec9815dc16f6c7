// Package adapters bridges module boundaries with small, purpose-built
// implementations of the consumer-side interfaces.
package adapters

import (
	"context"
	"fmt"

	apptsvc "gobarber_backend/internal/appointments/service"
	authrepo "gobarber_backend/internal/auth/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserDirectory reads user accounts for the appointments and notifications
// modules. It implements appointments' UserDirectory and notifications'
// ProviderChecker.
type UserDirectory struct {
	repo *authrepo.Repository
}

// NewUserDirectory creates a user directory backed by the users table.
func NewUserDirectory(pool *pgxpool.Pool) *UserDirectory {
	return &UserDirectory{repo: authrepo.New(pool)}
}

// GetUser resolves the user slice booking needs.
func (d *UserDirectory) GetUser(ctx context.Context, id int64) (apptsvc.UserInfo, error) {
	user, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return apptsvc.UserInfo{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return apptsvc.UserInfo{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Provider: user.Provider,
	}, nil
}

// IsProvider reports whether the id belongs to a provider account.
func (d *UserDirectory) IsProvider(ctx context.Context, id int64) (bool, error) {
	user, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get user %d: %w", id, err)
	}
	return user.Provider, nil
}

var _ apptsvc.UserDirectory = (*UserDirectory)(nil)
