package providers

import (
	"context"
	"testing"
	"time"

	"gobarber_backend/platform/apperr"
)

type fakeProviderStore struct {
	providers []Provider
	booked    []time.Time
}

func (f *fakeProviderStore) List(ctx context.Context) ([]Provider, error) {
	return f.providers, nil
}

func (f *fakeProviderStore) Exists(ctx context.Context, id int64) (bool, error) {
	for _, p := range f.providers {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProviderStore) BookedSlots(ctx context.Context, providerID int64, dayStart, dayEnd time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, t := range f.booked {
		if !t.Before(dayStart) && t.Before(dayEnd) {
			out = append(out, t)
		}
	}
	return out, nil
}

func avatarPtrs(id int64, path string) (*int64, *string) {
	return &id, &path
}

func TestListIncludesAvatarURL(t *testing.T) {
	avatarID, avatarPath := avatarPtrs(4, "abc123.png")
	store := &fakeProviderStore{providers: []Provider{
		{ID: 2, Name: "John Barber", Email: "john@example.com", AvatarID: avatarID, AvatarPath: avatarPath},
		{ID: 5, Name: "No Avatar", Email: "plain@example.com"},
	}}
	svc := NewService(store, "http://localhost:3333/files")

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(items))
	}
	if items[0].Avatar == nil || items[0].Avatar.URL != "http://localhost:3333/files/abc123.png" {
		t.Fatalf("unexpected avatar: %+v", items[0].Avatar)
	}
	if items[1].Avatar != nil {
		t.Fatalf("expected nil avatar, got %+v", items[1].Avatar)
	}
}

func TestAvailableUnknownProvider(t *testing.T) {
	svc := NewService(&fakeProviderStore{}, "http://localhost:3333/files")

	_, err := svc.Available(context.Background(), 99, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestAvailableGrid(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeProviderStore{
		providers: []Provider{{ID: 2, Name: "John Barber", Email: "john@example.com"}},
		booked: []time.Time{
			day.Add(14 * time.Hour),
			day.Add(15 * time.Hour),
		},
	}
	svc := NewService(store, "http://localhost:3333/files")
	// 10:30: hours up to and including 10 are gone, 11 onward remain.
	svc.SetClock(func() time.Time { return day.Add(10*time.Hour + 30*time.Minute) })

	grid, err := svc.Available(context.Background(), 2, day)
	if err != nil {
		t.Fatalf("Available returned error: %v", err)
	}
	if len(grid) != 12 {
		t.Fatalf("expected 12 hour slots, got %d", len(grid))
	}
	if grid[0].Time != "08:00" || grid[len(grid)-1].Time != "19:00" {
		t.Fatalf("grid range %s..%s, want 08:00..19:00", grid[0].Time, grid[len(grid)-1].Time)
	}

	want := map[string]bool{
		"08:00": false, "09:00": false, "10:00": false,
		"11:00": true, "12:00": true, "13:00": true,
		"14:00": false, "15:00": false,
		"16:00": true, "17:00": true, "18:00": true, "19:00": true,
	}
	for _, slot := range grid {
		if slot.Available != want[slot.Time] {
			t.Errorf("slot %s available = %v, want %v", slot.Time, slot.Available, want[slot.Time])
		}
	}
}

func TestAvailableSlotValuesMatchHours(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeProviderStore{providers: []Provider{{ID: 2, Name: "John Barber", Email: "john@example.com"}}}
	svc := NewService(store, "http://localhost:3333/files")

	grid, err := svc.Available(context.Background(), 2, day)
	if err != nil {
		t.Fatalf("Available returned error: %v", err)
	}
	for i, slot := range grid {
		want := day.Add(time.Duration(8+i) * time.Hour)
		if !slot.Value.Equal(want) {
			t.Errorf("slot %d value = %v, want %v", i, slot.Value, want)
		}
	}
}
