// Package archives persists submission archive blobs and serves the
// archive catalog (list, search, download by id or filename).
package archives

import (
	"context"

	"github.com/metco-eng/fieldvault/internal/server/models"
)

// Repository stores archive blobs. Archives are created once and never
// updated; the local blob table is the durable source of truth.
type Repository interface {
	// Insert stores the blob under its filename and returns the row id.
	Insert(ctx context.Context, filename string, content []byte) (int64, error)

	// List returns catalog entries sorted by insertion descending. A
	// non-empty query filters by case-insensitive substring on filename.
	List(ctx context.Context, query string) ([]models.ArchiveInfo, error)

	// GetByID returns the archive with the given row id, or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Archive, error)

	// GetByName returns the archive with the exact filename, or
	// common.ErrorNotFound.
	GetByName(ctx context.Context, filename string) (*models.Archive, error)
}
