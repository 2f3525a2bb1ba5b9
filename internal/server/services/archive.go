package services

import (
	"context"

	"github.com/metco-eng/fieldvault/internal/logging"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/server/repositories/archives"
)

// ArchiveService serves the archive catalog: listing, filename search and
// blob downloads by id or exact filename.
type ArchiveService struct {
	archives archives.Repository
	logger   logging.Logger
}

func NewArchiveService(archivesRepo archives.Repository, logger logging.Logger) *ArchiveService {
	return &ArchiveService{
		archives: archivesRepo,
		logger:   logger.With("component", "archives"),
	}
}

// List returns catalog entries newest-first. A non-empty query filters by
// case-insensitive substring on the filename.
func (s *ArchiveService) List(ctx context.Context, query string) ([]models.ArchiveInfo, error) {
	return s.archives.List(ctx, query)
}

// GetByID loads one archive blob, or common.ErrorNotFound.
func (s *ArchiveService) GetByID(ctx context.Context, id int64) (*models.Archive, error) {
	return s.archives.GetByID(ctx, id)
}

// GetByName loads one archive blob by exact filename, or
// common.ErrorNotFound.
func (s *ArchiveService) GetByName(ctx context.Context, filename string) (*models.Archive, error) {
	return s.archives.GetByName(ctx, filename)
}
