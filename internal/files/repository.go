package files

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// File is the files table model. Name is the original client file name, Path
// the stored object name.
type File struct {
	ID        int64
	Name      string
	Path      string
	CreatedAt time.Time
}

// Repository provides database operations for uploaded files.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new files repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create records an uploaded file.
func (r *Repository) Create(ctx context.Context, name, path string) (*File, error) {
	var f File
	err := r.pool.QueryRow(ctx, `
		INSERT INTO files (name, path)
		VALUES ($1, $2)
		RETURNING id, name, path, created_at
	`, name, path).Scan(&f.ID, &f.Name, &f.Path, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	return &f, nil
}
