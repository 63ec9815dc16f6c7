package providers

import (
	"context"
	"fmt"
	"time"

	"gobarber_backend/platform/apperr"
)

// Working hours: hour slots from dayFirstHour through dayLastHour inclusive.
const (
	dayFirstHour = 8
	dayLastHour  = 19
)

// AvatarInfo describes a provider's avatar file.
type AvatarInfo struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// ProviderResponse is the catalog entry returned to clients.
type ProviderResponse struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Avatar *AvatarInfo `json:"avatar"`
}

// HourSlot is one entry of the availability grid for a day.
type HourSlot struct {
	Time      string    `json:"time"`
	Value     time.Time `json:"value"`
	Available bool      `json:"available"`
}

// Store is the persistence surface the service needs.
type Store interface {
	List(ctx context.Context) ([]Provider, error)
	Exists(ctx context.Context, id int64) (bool, error)
	BookedSlots(ctx context.Context, providerID int64, dayStart, dayEnd time.Time) ([]time.Time, error)
}

// Service provides the provider catalog and availability grid.
type Service struct {
	repo        Store
	fileBaseURL string
	now         func() time.Time
}

// NewService creates a new providers service. The clock defaults to time.Now
// and is overridden in tests.
func NewService(repo Store, fileBaseURL string) *Service {
	return &Service{repo: repo, fileBaseURL: fileBaseURL, now: time.Now}
}

// SetClock overrides the service clock. Used by tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// List returns every provider account.
func (s *Service) List(ctx context.Context) ([]ProviderResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list providers", err)
	}

	out := make([]ProviderResponse, 0, len(items))
	for _, p := range items {
		resp := ProviderResponse{ID: p.ID, Name: p.Name, Email: p.Email}
		if p.AvatarID != nil && p.AvatarPath != nil {
			resp.Avatar = &AvatarInfo{
				ID:   *p.AvatarID,
				Path: *p.AvatarPath,
				URL:  s.fileBaseURL + "/" + *p.AvatarPath,
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// Available returns the provider's hour grid for the given day. A slot is
// available when it lies in the future and no live appointment occupies it.
func (s *Service) Available(ctx context.Context, providerID int64, day time.Time) ([]HourSlot, error) {
	exists, err := s.repo.Exists(ctx, providerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load provider", err)
	}
	if !exists {
		return nil, apperr.NotFound("provider not found")
	}

	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := s.repo.BookedSlots(ctx, providerID, dayStart, dayEnd)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load booked slots", err)
	}
	taken := make(map[time.Time]bool, len(booked))
	for _, t := range booked {
		taken[t.UTC()] = true
	}

	now := s.now()
	grid := make([]HourSlot, 0, dayLastHour-dayFirstHour+1)
	for hour := dayFirstHour; hour <= dayLastHour; hour++ {
		value := dayStart.Add(time.Duration(hour) * time.Hour)
		grid = append(grid, HourSlot{
			Time:      fmt.Sprintf("%02d:00", hour),
			Value:     value,
			Available: value.After(now) && !taken[value],
		})
	}
	return grid, nil
}
