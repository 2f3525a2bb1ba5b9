package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/record"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/server/services"
	"github.com/metco-eng/fieldvault/internal/staging"
)

// Multipart form field names of the submission endpoint. Everything
// prefixed with "field_" lands in the record's field bag; the rest are
// addressed individually.
const (
	formKind      = "kind"
	formSheetName = "sheet_name"
	formRowIndex  = "row_index"
	formNotesText = "notes_text"
)

// fileFields maps upload field names onto their attachment category slot.
var fileFields = map[string]func(*models.AttachmentSet) *[]string{
	"before_images":      func(a *models.AttachmentSet) *[]string { return &a.Before },
	"after_images":       func(a *models.AttachmentSet) *[]string { return &a.After },
	"report_images":      func(a *models.AttachmentSet) *[]string { return &a.Report },
	"cm_images":          func(a *models.AttachmentSet) *[]string { return &a.CM },
	"spare_parts_images": func(a *models.AttachmentSet) *[]string { return &a.SpareParts },
	"notes_images":       func(a *models.AttachmentSet) *[]string { return &a.Notes },
}

// handleCreateRecord implements POST /api/v1/records. The body is walked as
// a multipart stream instead of being parsed into a form: value parts keep
// their submission order, which is what the record's field bag preserves,
// and file parts are staged as they arrive. Files with a disallowed
// extension or an unknown field name are skipped silently.
func (h *Handler) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		h.writeError(w, r, fmt.Errorf("multipart body required: %w", common.ErrorValidation))
		return
	}

	sub := &services.Submission{}
	var kindRaw, rowRaw string

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			h.writeError(w, r, fmt.Errorf("read multipart body: %w", common.ErrorValidation))
			return
		}

		if filename := part.FileName(); filename != "" {
			slot, known := fileFields[part.FormName()]
			if !known || !staging.Allowed(filename) {
				part.Close()
				continue
			}
			staged, err := h.area.Stage(filename, part)
			part.Close()
			if err != nil {
				h.writeError(w, r, fmt.Errorf("stage upload: %w", err))
				return
			}
			*slot(&sub.Staged) = append(*slot(&sub.Staged), staged)
			continue
		}

		value, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			h.writeError(w, r, fmt.Errorf("read multipart body: %w", common.ErrorValidation))
			return
		}

		name := part.FormName()
		switch name {
		case formKind:
			kindRaw = string(value)
		case formSheetName:
			sub.SheetName = string(value)
		case formRowIndex:
			rowRaw = string(value)
		case formNotesText:
			sub.NotesText = string(value)
		default:
			sub.Pairs = append(sub.Pairs, record.FormPair{Key: name, Value: string(value)})
		}
	}

	kind, err := models.ParseKind(kindRaw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sub.Kind = kind

	if strings.TrimSpace(sub.SheetName) == "" {
		h.writeError(w, r, fmt.Errorf("sheet name required: %w", common.ErrorValidation))
		return
	}

	sub.RowIndex, err = strconv.Atoi(rowRaw)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("bad row index: %w", common.ErrorValidation))
		return
	}

	result, err := h.records.Submit(r.Context(), sub)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// handleGetRecord implements GET /api/v1/records/{id}.
func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("bad record id: %w", common.ErrorValidation))
		return
	}

	rec, err := h.records.GetRecord(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}
