package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/metco-eng/fieldvault/internal/artifact"
	"github.com/metco-eng/fieldvault/internal/filex"
	"github.com/metco-eng/fieldvault/internal/logging"
	"github.com/metco-eng/fieldvault/internal/record"
	sc "github.com/metco-eng/fieldvault/internal/server/config"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/staging"
)

// Seams for tests.
var (
	timeNow           = time.Now
	generateArtifacts = artifact.Generate
)

// ArchiveBuilder moves a submission's staged images into its output
// directory and compresses the directory into a zip blob.
type ArchiveBuilder interface {
	Build(outputDir, base string, att *models.AttachmentSet) (string, []byte, error)
}

// Mirror pushes a finished archive to remote object storage. Implementations
// must be best-effort: they log failures and never report them.
type Mirror interface {
	Upload(ctx context.Context, filename string, content []byte)
}

// SubmissionStore persists a submission's record and archive blob in one
// transaction and loads stored records back.
type SubmissionStore interface {
	PersistSubmission(ctx context.Context, rec *models.Record, filename string, content []byte) (recordID, archiveID int64, err error)
	GetRecord(ctx context.Context, id int64) (*models.Record, error)
}

// Submission is one incoming record: the validated row address, the form
// pairs in submission order, the free-text notes and the staged attachment
// filenames per category. Attachments are already sitting in the staging
// area when Submit is called.
type Submission struct {
	Kind      models.Kind
	SheetName string
	RowIndex  int
	Pairs     []record.FormPair
	NotesText string
	Staged    models.AttachmentSet
}

// SubmitResult reports the durable outcome of a submission.
type SubmitResult struct {
	RecordID    int64  `json:"record_id"`
	ArchiveID   int64  `json:"archive_id"`
	ZipFilename string `json:"zip_filename"`
}

// RecordService runs the submission pipeline: assemble the record, render
// its artifacts, build the archive, persist record and archive locally, then
// mirror the archive remotely in the background.
type RecordService struct {
	config  *sc.Config
	area    *staging.Area
	builder ArchiveBuilder
	store   SubmissionStore
	mirror  Mirror
	logger  logging.Logger
}

func NewRecordService(
	config *sc.Config,
	area *staging.Area,
	builder ArchiveBuilder,
	store SubmissionStore,
	mirror Mirror,
	logger logging.Logger,
) *RecordService {
	return &RecordService{
		config:  config,
		area:    area,
		builder: builder,
		store:   store,
		mirror:  mirror,
		logger:  logger.With("component", "records"),
	}
}

// gateAttachments keeps only the categories the kind may carry: PM fills
// Before/After/Report, Asset and CM fill CM, only Asset fills SpareParts,
// Notes always passes. Staged files of dropped categories are deleted so
// they cannot leak into a later submission's archive.
func (s *RecordService) gateAttachments(ctx context.Context, kind models.Kind, staged models.AttachmentSet) models.AttachmentSet {
	out := models.AttachmentSet{Notes: staged.Notes}
	var dropped []string

	if kind == models.KindPM {
		out.Before = staged.Before
		out.After = staged.After
		out.Report = staged.Report
	} else {
		dropped = append(dropped, staged.Before...)
		dropped = append(dropped, staged.After...)
		dropped = append(dropped, staged.Report...)
	}

	if kind == models.KindAsset || kind == models.KindCM {
		out.CM = staged.CM
	} else {
		dropped = append(dropped, staged.CM...)
	}

	if kind == models.KindAsset {
		out.SpareParts = staged.SpareParts
	} else {
		dropped = append(dropped, staged.SpareParts...)
	}

	for _, name := range dropped {
		if err := os.Remove(s.area.Path(name)); err != nil {
			s.logger.Warn(ctx, "could not remove gated upload", "file", name, "error", err.Error())
		}
	}
	if len(dropped) > 0 {
		s.logger.Info(ctx, "dropped uploads not allowed for kind",
			"kind", string(kind), "count", len(dropped))
	}

	return out
}

// Submit runs the whole pipeline for one submission. Nothing is persisted
// until the archive blob exists: a failure in artifact rendering or
// compression leaves the database untouched, with at worst orphan files in
// the staging area and the output directory. After the local writes succeed
// the archive is mirrored in the background and any mirror failure is
// invisible to the caller.
func (s *RecordService) Submit(ctx context.Context, sub *Submission) (*SubmitResult, error) {
	now := timeNow()

	fields := record.AssembleFields(sub.Pairs, sub.NotesText)

	rec := &models.Record{
		Kind:        sub.Kind,
		SheetName:   sub.SheetName,
		RowIndex:    sub.RowIndex,
		Fields:      fields,
		NotesText:   sub.NotesText,
		Attachments: s.gateAttachments(ctx, sub.Kind, sub.Staged),
		CreatedAt:   now,
	}

	base := record.BaseFilename(fields, now)

	outputDir, err := filex.EnsureDir(filepath.Join(s.config.UploadDir, base))
	if err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}

	if err := generateArtifacts(outputDir, base, rec, s.area); err != nil {
		return nil, fmt.Errorf("render artifacts: %w", err)
	}

	filename, content, err := s.builder.Build(outputDir, base, &rec.Attachments)
	if err != nil {
		return nil, fmt.Errorf("build archive: %w", err)
	}

	recordID, archiveID, err := s.store.PersistSubmission(ctx, rec, filename, content)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "submission stored",
		"record_id", recordID, "archive_id", archiveID, "filename", filename)

	// The request context ends with the response; the mirror keeps going.
	go s.mirror.Upload(context.WithoutCancel(ctx), filename, content)

	return &SubmitResult{
		RecordID:    recordID,
		ArchiveID:   archiveID,
		ZipFilename: filename,
	}, nil
}

// GetRecord loads one stored record, or common.ErrorNotFound.
func (s *RecordService) GetRecord(ctx context.Context, id int64) (*models.Record, error) {
	return s.store.GetRecord(ctx, id)
}
