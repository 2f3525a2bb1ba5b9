package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/server/models"
)

type searchRequest struct {
	Query string `json:"query"`
}

// handleSearch implements POST /api/v1/search: one query scanned over both
// source workbooks.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("bad request body: %w", common.ErrorValidation))
		return
	}

	result, err := h.search.Search(r.Context(), req.Query)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetRow implements GET /api/v1/rows/{kind}/{sheet}/{row}: resolve a
// positional row address against the kind's source workbook. The sheet name
// is path-escaped by the caller.
func (h *Handler) handleGetRow(w http.ResponseWriter, r *http.Request) {
	kind, err := models.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	sheet, err := url.PathUnescape(chi.URLParam(r, "sheet"))
	if err != nil || sheet == "" {
		h.writeError(w, r, fmt.Errorf("bad sheet name: %w", common.ErrorValidation))
		return
	}

	rowIndex, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		h.writeError(w, r, fmt.Errorf("bad row index: %w", common.ErrorValidation))
		return
	}

	row, err := h.search.GetRow(r.Context(), kind, sheet, rowIndex)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, row)
}
