// Package notifications stores and serves the provider notification feed.
package notifications

import (
	apphttp "gobarber_backend/internal/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the notifications domain module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates the notifications module.
func NewModule(pool *pgxpool.Pool, users ProviderChecker) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, users)
	h := NewHandler(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "notifications"
}

// Service exposes the notifications service, used by the appointments module
// as its notifier.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes registers the notification routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/notifications", m.handler.List)
	ctx.Protected.PUT("/notifications/:id", m.handler.MarkRead)
}

var _ apphttp.Module = (*Module)(nil)
