package archives

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/dbx"
	"github.com/metco-eng/fieldvault/internal/server/models"
)

// SqliteRepository implements archive storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type SqliteRepository struct {
	db dbx.DBTX
}

// NewSqliteRepository constructs a repository bound to the given DBTX.
func NewSqliteRepository(db dbx.DBTX) *SqliteRepository {
	return &SqliteRepository{db: db}
}

// Insert stores an archive blob.
func (r *SqliteRepository) Insert(ctx context.Context, filename string, content []byte) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO zip_files (filename, content) VALUES (?, ?)`, filename, content)
	if err != nil {
		return 0, fmt.Errorf("insert archive: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("archive id: %w", err)
	}
	return id, nil
}

// List returns catalog entries, newest insertion first.
func (r *SqliteRepository) List(ctx context.Context, query string) ([]models.ArchiveInfo, error) {
	var rows *sql.Rows
	var err error

	if q := strings.TrimSpace(query); q != "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, filename FROM zip_files WHERE LOWER(filename) LIKE ? ORDER BY id DESC`,
			"%"+strings.ToLower(q)+"%")
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, filename FROM zip_files ORDER BY id DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}
	defer rows.Close()

	var result []models.ArchiveInfo
	for rows.Next() {
		var item models.ArchiveInfo
		if err := rows.Scan(&item.ID, &item.Filename); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns one archive blob by row id.
func (r *SqliteRepository) GetByID(ctx context.Context, id int64) (*models.Archive, error) {
	a := &models.Archive{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, filename, content FROM zip_files WHERE id = ?`, id).
		Scan(&a.ID, &a.Filename, &a.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("archive %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select archive: %w", err)
	}
	return a, nil
}

// GetByName returns one archive blob by exact filename.
func (r *SqliteRepository) GetByName(ctx context.Context, filename string) (*models.Archive, error) {
	a := &models.Archive{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, filename, content FROM zip_files WHERE filename = ?`, filename).
		Scan(&a.ID, &a.Filename, &a.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("archive %q: %w", filename, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select archive: %w", err)
	}
	return a, nil
}
