// Package files handles avatar uploads backed by MinIO object storage.
package files

import (
	apphttp "gobarber_backend/internal/http"
	"gobarber_backend/platform/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the files domain module.
type Module struct {
	handler *Handler
}

// NewModule creates the files module.
func NewModule(pool *pgxpool.Pool, storage Storage, cfg config.StorageConfig) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, storage, cfg)
	h := NewHandler(svc)

	return &Module{handler: h}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "files"
}

// RegisterRoutes registers the upload route.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/files", m.handler.Upload)
}

var _ apphttp.Module = (*Module)(nil)
