// Package repomanager wires repository constructors and database migrations
// together behind a single vendor interface.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/metco-eng/fieldvault/internal/dbx"
	"github.com/metco-eng/fieldvault/internal/server/repositories/archives"
	"github.com/metco-eng/fieldvault/internal/server/repositories/records"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes the schema migration hook.
type RepositoryManager interface {
	Records(db dbx.DBTX) records.Repository
	Archives(db dbx.DBTX) archives.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
