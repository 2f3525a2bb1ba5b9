// Package httpapi exposes the FieldVault use cases over HTTP: row search
// and lookup, record submission, and the archive catalog.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/logging"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/server/services"
	"github.com/metco-eng/fieldvault/internal/staging"
)

// SearchProvider answers row searches and row lookups.
type SearchProvider interface {
	Search(ctx context.Context, query string) (*services.SearchResult, error)
	GetRow(ctx context.Context, kind models.Kind, sheetName string, rowIndex int) (map[string]string, error)
}

// RecordProvider runs the submission pipeline and loads stored records.
type RecordProvider interface {
	Submit(ctx context.Context, sub *services.Submission) (*services.SubmitResult, error)
	GetRecord(ctx context.Context, id int64) (*models.Record, error)
}

// ArchiveCatalog serves stored archives.
type ArchiveCatalog interface {
	List(ctx context.Context, query string) ([]models.ArchiveInfo, error)
	GetByID(ctx context.Context, id int64) (*models.Archive, error)
	GetByName(ctx context.Context, filename string) (*models.Archive, error)
}

// Handler holds the API's dependencies and implements all routes.
type Handler struct {
	search   SearchProvider
	records  RecordProvider
	archives ArchiveCatalog
	area     *staging.Area
	logger   logging.Logger
}

func NewHandler(
	search SearchProvider,
	records RecordProvider,
	archives ArchiveCatalog,
	area *staging.Area,
	logger logging.Logger,
) *Handler {
	return &Handler{
		search:   search,
		records:  records,
		archives: archives,
		area:     area,
		logger:   logger.With("component", "httpapi"),
	}
}

// Routes builds the chi router for the API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.logRequests)

	r.Get("/healthz", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", h.handleSearch)
		r.Get("/rows/{kind}/{sheet}/{row}", h.handleGetRow)
		r.Post("/records", h.handleCreateRecord)
		r.Get("/records/{id}", h.handleGetRecord)
		r.Get("/archives", h.handleListArchives)
		r.Get("/archives/{id}", h.handleGetArchiveByID)
		r.Get("/archives/name/{filename}", h.handleGetArchiveByName)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// apiError is the uniform error body of the API.
type apiError struct {
	Error string `json:"error"`
}

// writeError maps a service error onto an HTTP status and writes the
// uniform error body.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorUnknownKind):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrorSourceUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
	}

	writeJSON(w, status, apiError{Error: err.Error()})
}
