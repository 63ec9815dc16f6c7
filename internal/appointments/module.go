// Package appointments provides the booking and cancellation domain module.
package appointments

import (
	"gobarber_backend/internal/appointments/handler"
	"gobarber_backend/internal/appointments/repository"
	"gobarber_backend/internal/appointments/service"
	apphttp "gobarber_backend/internal/http"
	"gobarber_backend/internal/queue"
	"gobarber_backend/platform/logger"
	"gobarber_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the appointments domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the appointments module with all dependencies wired.
// Users and notifier come from their owning modules through the service's
// narrow interfaces.
func NewModule(pool *pgxpool.Pool, users service.UserDirectory, notifier service.Notifier, mailQueue queue.CancellationMailEnqueuer, log *logger.Logger, fileBaseURL string, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, users, notifier, mailQueue, log, fileBaseURL)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "appointments"
}

// Service exposes the appointments service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the appointment and schedule routes. All of them
// require authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/appointments", m.handler.List)
	ctx.Protected.POST("/appointments", m.handler.Create)
	ctx.Protected.DELETE("/appointments/:id", m.handler.Delete)
	ctx.Protected.GET("/schedule", m.handler.Schedule)
}

var _ apphttp.Module = (*Module)(nil)
