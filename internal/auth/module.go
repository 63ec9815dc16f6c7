// Package auth provides the users and sessions domain module.
package auth

import (
	"gobarber_backend/internal/auth/handler"
	"gobarber_backend/internal/auth/repository"
	"gobarber_backend/internal/auth/service"
	apphttp "gobarber_backend/internal/http"
	"gobarber_backend/platform/config"
	"gobarber_backend/platform/logger"
	"gobarber_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ModuleConfig combines the config interfaces the auth module needs.
type ModuleConfig interface {
	config.AuthConfig
	GetFileBaseURL() string
}

// Module represents the auth domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the auth module with all dependencies wired.
func NewModule(pool *pgxpool.Pool, cfg ModuleConfig, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, cfg.GetFileBaseURL(), log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// Service exposes the auth service for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers registration, session and profile routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	sessionLimited := ctx.Public.Group("")
	sessionLimited.Use(ctx.AuthRateLimiter.RateLimit())
	sessionLimited.POST("/users", m.handler.Register)
	sessionLimited.POST("/sessions", m.handler.CreateSession)

	ctx.Protected.PUT("/users", m.handler.Update)
}

var _ apphttp.Module = (*Module)(nil)
