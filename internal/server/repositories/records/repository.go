// Package records persists submitted maintenance records.
package records

import (
	"context"

	"github.com/metco-eng/fieldvault/internal/server/models"
)

// Repository stores submitted records. A record is written exactly once and
// owned by the store afterwards.
type Repository interface {
	// Insert stores the record and returns its id.
	Insert(ctx context.Context, rec *models.Record) (int64, error)

	// GetByID loads a stored record. Returns common.ErrorNotFound when the
	// id is unknown.
	GetByID(ctx context.Context, id int64) (*models.Record, error)
}
