package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/dbx"
	"github.com/metco-eng/fieldvault/internal/server/models"
)

// SqliteRepository implements record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type SqliteRepository struct {
	db dbx.DBTX
}

// NewSqliteRepository constructs a repository bound to the given DBTX.
func NewSqliteRepository(db dbx.DBTX) *SqliteRepository {
	return &SqliteRepository{db: db}
}

// Insert stores one submitted record. The field bag is serialized as a JSON
// blob, attachment lists as comma-joined staged filenames.
func (r *SqliteRepository) Insert(ctx context.Context, rec *models.Record) (int64, error) {
	data, err := json.Marshal(rec.Fields)
	if err != nil {
		return 0, fmt.Errorf("marshal fields: %w", err)
	}

	query := `
		INSERT INTO maintenance_records
			(kind, sheet_name, row_index, data, created_at,
			 before_images, after_images, report_images, cm_images,
			 spare_parts_images, notes_text, notes_images)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		string(rec.Kind), rec.SheetName, rec.RowIndex, string(data), rec.CreatedAt,
		joinList(rec.Attachments.Before), joinList(rec.Attachments.After),
		joinList(rec.Attachments.Report), joinList(rec.Attachments.CM),
		joinList(rec.Attachments.SpareParts), rec.NotesText, joinList(rec.Attachments.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record id: %w", err)
	}
	return id, nil
}

// GetByID loads a stored record by id.
func (r *SqliteRepository) GetByID(ctx context.Context, id int64) (*models.Record, error) {
	query := `
		SELECT id, kind, sheet_name, row_index, data, created_at,
		       before_images, after_images, report_images, cm_images,
		       spare_parts_images, notes_text, notes_images
		FROM maintenance_records WHERE id = ?
	`

	var rec models.Record
	var kind, data string
	var before, after, report, cm, spare, notes string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &kind, &rec.SheetName, &rec.RowIndex, &data, &rec.CreatedAt,
		&before, &after, &report, &cm, &spare, &rec.NotesText, &notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", id, common.ErrorNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select record: %w", err)
	}

	rec.Kind = models.Kind(kind)
	if err := json.Unmarshal([]byte(data), &rec.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields of record %d: %w", id, err)
	}
	rec.Attachments = models.AttachmentSet{
		Before:     splitList(before),
		After:      splitList(after),
		Report:     splitList(report),
		CM:         splitList(cm),
		SpareParts: splitList(spare),
		Notes:      splitList(notes),
	}

	return &rec, nil
}

func joinList(names []string) string {
	return strings.Join(names, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
