package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gobarber_backend/internal/auth/password"
	"gobarber_backend/internal/auth/repository"
	"gobarber_backend/internal/auth/transport"
	"gobarber_backend/platform/apperr"
	"gobarber_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type testAuthConfig struct{}

func (testAuthConfig) GetJWTSecret() string       { return "test-secret" }
func (testAuthConfig) GetTokenTTL() time.Duration { return time.Hour }

type fakeUserStore struct {
	nextID  int64
	byID    map[int64]*repository.User
	byEmail map[string]*repository.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[int64]*repository.User),
		byEmail: make(map[string]*repository.User),
	}
}

func (s *fakeUserStore) Create(ctx context.Context, name, email, passwordHash string, provider bool) (*repository.User, error) {
	if _, exists := s.byEmail[email]; exists {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	s.nextID++
	user := &repository.User{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Provider:     provider,
	}
	s.byID[user.ID] = user
	s.byEmail[email] = user
	out := *user
	return &out, nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*repository.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *user
	return &out, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *user
	return &out, nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *repository.User) error {
	stored, ok := s.byID[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if other, exists := s.byEmail[user.Email]; exists && other.ID != user.ID {
		return &pgconn.PgError{Code: "23505"}
	}
	delete(s.byEmail, stored.Email)
	updated := *user
	s.byID[user.ID] = &updated
	s.byEmail[user.Email] = &updated
	return nil
}

func newTestService() (*Service, *fakeUserStore) {
	svc, store, _ := newTestServiceWithLogs()
	return svc, store
}

func newTestServiceWithLogs() (*Service, *fakeUserStore, *bytes.Buffer) {
	store := newFakeUserStore()
	logs := &bytes.Buffer{}
	log := &logger.Logger{Logger: slog.New(slog.NewTextHandler(logs, nil))}
	return New(store, testAuthConfig{}, "http://localhost:3333/files", log), store, logs
}

func register(t *testing.T, svc *Service, name, email string, provider bool) *transport.UserResponse {
	t.Helper()
	user, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
		Provider: provider,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return user
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store := newTestService()
	user := register(t, svc, "Jane Doe", "jane@example.com", false)

	stored := store.byID[user.ID]
	if stored.PasswordHash == "secret123" {
		t.Fatal("password stored in plain text")
	}
	if err := password.Compare(stored.PasswordHash, "secret123"); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "Jane Doe", "jane@example.com", false)

	_, err := svc.Register(context.Background(), transport.RegisterRequest{
		Name:     "Other Jane",
		Email:    "jane@example.com",
		Password: "different",
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestLoginIssuesParseableToken(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "Jane Doe", "jane@example.com", false)

	session, err := svc.Login(context.Background(), transport.SessionRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a session token")
	}

	parsed, err := jwt.Parse(session.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub != "1" {
		t.Fatalf("token subject = %q (%v), want %q", sub, err, "1")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "Jane Doe", "jane@example.com", false)

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", "jane@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "secret123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), transport.SessionRequest{
				Email:    tc.email,
				Password: tc.pass,
			})
			if !apperr.Is(err, apperr.KindUnauthorized) {
				t.Fatalf("expected unauthorized error, got %v", err)
			}
		})
	}
}

func TestLoginLogsAuthEvents(t *testing.T) {
	svc, _, logs := newTestServiceWithLogs()
	register(t, svc, "Jane Doe", "jane@example.com", false)

	if _, err := svc.Login(context.Background(), transport.SessionRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	}); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if !strings.Contains(logs.String(), "auth_event") || !strings.Contains(logs.String(), "success=false") {
		t.Fatalf("failed login not logged as auth event: %q", logs.String())
	}

	logs.Reset()
	if _, err := svc.Login(context.Background(), transport.SessionRequest{
		Email:    "jane@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !strings.Contains(logs.String(), "success=true") {
		t.Fatalf("successful login not logged as auth event: %q", logs.String())
	}
}

func TestUpdatePasswordRequiresMatchingOldPassword(t *testing.T) {
	svc, _ := newTestService()
	user := register(t, svc, "Jane Doe", "jane@example.com", false)

	_, err := svc.Update(context.Background(), user.ID, transport.UpdateUserRequest{
		OldPassword: "wrong",
		Password:    "newsecret",
	})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	if _, err := svc.Update(context.Background(), user.ID, transport.UpdateUserRequest{
		OldPassword: "secret123",
		Password:    "newsecret",
	}); err != nil {
		t.Fatalf("Update with matching old password returned error: %v", err)
	}

	if _, err := svc.Login(context.Background(), transport.SessionRequest{
		Email:    "jane@example.com",
		Password: "newsecret",
	}); err != nil {
		t.Fatalf("Login with new password returned error: %v", err)
	}
}

func TestUpdateRejectsTakenEmail(t *testing.T) {
	svc, _ := newTestService()
	register(t, svc, "Jane Doe", "jane@example.com", false)
	other := register(t, svc, "John Barber", "john@example.com", true)

	_, err := svc.Update(context.Background(), other.ID, transport.UpdateUserRequest{
		Email: "jane@example.com",
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdateSetsAvatar(t *testing.T) {
	svc, store := newTestService()
	user := register(t, svc, "Jane Doe", "jane@example.com", false)

	avatarID := int64(9)
	if _, err := svc.Update(context.Background(), user.ID, transport.UpdateUserRequest{
		AvatarID: &avatarID,
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	stored := store.byID[user.ID]
	if stored.AvatarID == nil || *stored.AvatarID != avatarID {
		t.Fatalf("avatar id not persisted: %+v", stored.AvatarID)
	}
}
