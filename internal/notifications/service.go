package notifications

import (
	"context"
	"errors"
	"fmt"

	"gobarber_backend/platform/apperr"

	"github.com/jackc/pgx/v5"
)

// listLimit caps the notification feed so an old provider account never
// pulls its full history in one request.
const listLimit = 100

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, providerID int64, content string) error
	ListByProvider(ctx context.Context, providerID int64, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, providerID int64) (*Notification, error)
}

// ProviderChecker reports whether a user id belongs to a provider account.
type ProviderChecker interface {
	IsProvider(ctx context.Context, id int64) (bool, error)
}

// Service provides business logic for provider notifications. It also
// implements the appointments module's Notifier.
type Service struct {
	repo  Store
	users ProviderChecker
}

// NewService creates a new notifications service.
func NewService(repo Store, users ProviderChecker) *Service {
	return &Service{repo: repo, users: users}
}

// Notify appends a notification record for the provider.
func (s *Service) Notify(ctx context.Context, providerID int64, content string) error {
	if err := s.repo.Insert(ctx, providerID, content); err != nil {
		return fmt.Errorf("notify provider %d: %w", providerID, err)
	}
	return nil
}

// List returns the provider's notifications, newest first. Non-provider
// accounts are rejected.
func (s *Service) List(ctx context.Context, userID int64) ([]Notification, error) {
	isProvider, err := s.users.IsProvider(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	if !isProvider {
		return nil, apperr.Forbidden("only providers can load notifications")
	}

	items, err := s.repo.ListByProvider(ctx, userID, listLimit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list notifications", err)
	}
	if items == nil {
		items = []Notification{}
	}
	return items, nil
}

// MarkRead marks one of the caller's notifications as read and returns the
// updated record. Another provider's notification reads as not found.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID int64) (*Notification, error) {
	n, err := s.repo.MarkRead(ctx, notificationID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("notification not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update notification", err)
	}
	return n, nil
}
