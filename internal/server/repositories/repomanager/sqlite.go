package repomanager

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/metco-eng/fieldvault/internal/dbx"
	"github.com/metco-eng/fieldvault/internal/server/migrations"
	"github.com/metco-eng/fieldvault/internal/server/repositories/archives"
	"github.com/metco-eng/fieldvault/internal/server/repositories/records"
)

// SqliteRepositoryManager vends sqlite-backed repository implementations.
type SqliteRepositoryManager struct{}

// NewSqliteRepositoryManager constructs a sqlite-backed RepositoryManager.
func NewSqliteRepositoryManager() (RepositoryManager, error) {
	return &SqliteRepositoryManager{}, nil
}

// Records returns a records.Repository bound to the provided DBTX.
func (m *SqliteRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewSqliteRepository(db)
}

// Archives returns an archives.Repository bound to the provided DBTX.
func (m *SqliteRepositoryManager) Archives(db dbx.DBTX) archives.Repository {
	return archives.NewSqliteRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *SqliteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
