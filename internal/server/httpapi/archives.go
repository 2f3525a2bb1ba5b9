package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/server/models"
)

// handleListArchives implements GET /api/v1/archives. An optional ?q=
// filters the catalog by case-insensitive filename substring.
func (h *Handler) handleListArchives(w http.ResponseWriter, r *http.Request) {
	list, err := h.archives.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []models.ArchiveInfo{}
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGetArchiveByID implements GET /api/v1/archives/{id}: the zip blob
// as a download.
func (h *Handler) handleGetArchiveByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("bad archive id: %w", common.ErrorValidation))
		return
	}

	arch, err := h.archives.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeArchive(w, arch)
}

// handleGetArchiveByName implements GET /api/v1/archives/name/{filename}.
func (h *Handler) handleGetArchiveByName(w http.ResponseWriter, r *http.Request) {
	filename, err := url.PathUnescape(chi.URLParam(r, "filename"))
	if err != nil || filename == "" {
		h.writeError(w, r, fmt.Errorf("bad archive filename: %w", common.ErrorValidation))
		return
	}

	arch, err := h.archives.GetByName(r.Context(), filename)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeArchive(w, arch)
}

func writeArchive(w http.ResponseWriter, arch *models.Archive) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", arch.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(arch.SizeBytes(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(arch.Content)
}
