// Package service implements registration, sessions and profile updates.
package service

import (
	"context"
	"strconv"
	"time"

	"gobarber_backend/internal/auth/password"
	"gobarber_backend/internal/auth/repository"
	"gobarber_backend/internal/auth/transport"
	"gobarber_backend/platform/apperr"
	"gobarber_backend/platform/config"
	"gobarber_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
)

// UserStore is the persistence surface the service needs. Satisfied by
// *repository.Repository; substituted by fakes in tests.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string, provider bool) (*repository.User, error)
	GetByID(ctx context.Context, id int64) (*repository.User, error)
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
	Update(ctx context.Context, user *repository.User) error
}

// Service provides business logic for users and sessions.
type Service struct {
	repo        UserStore
	cfg         config.AuthConfig
	fileBaseURL string
	log         *logger.Logger
	now         func() time.Time
}

// New creates a new auth service.
func New(repo UserStore, cfg config.AuthConfig, fileBaseURL string, log *logger.Logger) *Service {
	return &Service{
		repo:        repo,
		cfg:         cfg,
		fileBaseURL: fileBaseURL,
		log:         log,
		now:         time.Now,
	}
}

// Register creates a new user. The bcrypt hash is computed here, before
// persistence.
func (s *Service) Register(ctx context.Context, req transport.RegisterRequest) (*transport.UserResponse, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user, err := s.repo.Create(ctx, req.Name, req.Email, hash, req.Provider)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	resp := s.toResponse(user)
	return &resp, nil
}

// Login verifies credentials and issues a signed session token.
func (s *Service) Login(ctx context.Context, req transport.SessionRequest) (*transport.SessionResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.log.AuthEvent("login", req.Email, false, "unknown email")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("login", req.Email, false, "password mismatch")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.signToken(user.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	s.log.AuthEvent("login", req.Email, true, "")
	return &transport.SessionResponse{
		User:  s.toResponse(user),
		Token: token,
	}, nil
}

// Update changes profile fields. Password changes require the matching
// current password; email changes must stay unique.
func (s *Service) Update(ctx context.Context, userID int64, req transport.UpdateUserRequest) (*transport.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.NotFound("user not found")
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing.ID != userID {
			return nil, apperr.Conflict("email already in use")
		}
		user.Email = req.Email
	}
	if req.AvatarID != nil {
		user.AvatarID = req.AvatarID
	}

	if req.Password != "" {
		if req.OldPassword == "" {
			return nil, apperr.Validation("oldPassword is required to change password")
		}
		if err := password.Compare(user.PasswordHash, req.OldPassword); err != nil {
			return nil, apperr.Forbidden("old password does not match")
		}
		hash, err := password.Hash(req.Password)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update user", err)
	}

	resp := s.toResponse(user)
	return &resp, nil
}

func (s *Service) signToken(userID int64) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.GetTokenTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTSecret()))
}

func (s *Service) toResponse(user *repository.User) transport.UserResponse {
	resp := transport.UserResponse{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Provider: user.Provider,
	}
	if user.AvatarID != nil && user.AvatarPath != nil {
		resp.Avatar = &transport.AvatarResponse{
			ID:   *user.AvatarID,
			Path: *user.AvatarPath,
			URL:  s.fileBaseURL + "/" + *user.AvatarPath,
		}
	}
	return resp
}
