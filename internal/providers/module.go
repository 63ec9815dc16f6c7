// Package providers serves the provider catalog and the hour availability
// grid clients book against.
package providers

import (
	apphttp "gobarber_backend/internal/http"
	"gobarber_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the providers domain module.
type Module struct {
	handler *Handler
}

// NewModule creates the providers module.
func NewModule(pool *pgxpool.Pool, fileBaseURL string, val *validator.Validator) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, fileBaseURL)
	h := NewHandler(svc, val)

	return &Module{handler: h}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "providers"
}

// RegisterRoutes registers the provider catalog routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/providers", m.handler.List)
	ctx.Protected.GET("/providers/:providerId/available", m.handler.Available)
}

var _ apphttp.Module = (*Module)(nil)
