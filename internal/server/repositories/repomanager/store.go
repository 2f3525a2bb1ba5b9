package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/metco-eng/fieldvault/internal/dbx"
	"github.com/metco-eng/fieldvault/internal/server/models"
)

// SubmissionStore persists a submission's record and archive blob together.
// Both rows commit in one transaction, so a failed blob write cannot leave
// a record that points at a missing archive.
type SubmissionStore struct {
	db      *sql.DB
	manager RepositoryManager
}

func NewSubmissionStore(db *sql.DB, manager RepositoryManager) *SubmissionStore {
	return &SubmissionStore{db: db, manager: manager}
}

// PersistSubmission inserts the record and the archive blob atomically and
// returns both row ids.
func (s *SubmissionStore) PersistSubmission(ctx context.Context, rec *models.Record, filename string, content []byte) (int64, int64, error) {
	var recordID, archiveID int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		recordID, err = s.manager.Records(tx).Insert(ctx, rec)
		if err != nil {
			return fmt.Errorf("persist record: %w", err)
		}
		archiveID, err = s.manager.Archives(tx).Insert(ctx, filename, content)
		if err != nil {
			return fmt.Errorf("persist archive: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return recordID, archiveID, nil
}

// GetRecord loads one stored record, or common.ErrorNotFound.
func (s *SubmissionStore) GetRecord(ctx context.Context, id int64) (*models.Record, error) {
	return s.manager.Records(s.db).GetByID(ctx, id)
}
