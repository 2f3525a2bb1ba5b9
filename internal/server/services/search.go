// Package services implements the server's use cases on top of the
// workbook, staging, artifact, archive and repository layers.
package services

import (
	"context"
	"fmt"

	"github.com/metco-eng/fieldvault/internal/common"
	"github.com/metco-eng/fieldvault/internal/logging"
	sc "github.com/metco-eng/fieldvault/internal/server/config"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/workbook"
)

// SearchResult groups one query's hits by source workbook.
type SearchResult struct {
	AssetMatches []workbook.RowMatch `json:"asset_matches"`
	PMMatches    []workbook.RowMatch `json:"pm_matches"`
}

// SearchService answers row searches and row lookups over the two source
// workbooks. The files are re-read on every call, so results always reflect
// the current file content and row indexes are only stable between edits.
type SearchService struct {
	config *sc.Config
	logger logging.Logger
}

func NewSearchService(config *sc.Config, logger logging.Logger) *SearchService {
	return &SearchService{
		config: config,
		logger: logger.With("component", "search"),
	}
}

func (s *SearchService) loadAsset() (*workbook.Workbook, error) {
	wb, err := workbook.LoadSheets(s.config.AssetFilePath, workbook.AssetHeaderRow)
	if err != nil {
		return nil, fmt.Errorf("asset source: %w (%w)", err, common.ErrorSourceUnavailable)
	}
	return wb, nil
}

func (s *SearchService) loadPM() (*workbook.Workbook, error) {
	wb, err := workbook.LoadSheets(s.config.PMFilePath, workbook.PMHeaderRow)
	if err != nil {
		return nil, fmt.Errorf("pm source: %w (%w)", err, common.ErrorSourceUnavailable)
	}
	return wb, nil
}

// Search scans both sources for the query: every cell of the asset registry,
// the fixed searchable columns of the PM schedule. An empty query yields an
// empty result. A missing source file contributes no matches; an unreadable
// one fails the whole search.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	asset, err := s.loadAsset()
	if err != nil {
		return nil, err
	}
	pm, err := s.loadPM()
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		AssetMatches: workbook.SearchAllCells(asset, query),
		PMMatches:    workbook.SearchColumns(pm, query, workbook.PMSearchColumns),
	}

	s.logger.Debug(ctx, "search finished", "query", query,
		"asset_matches", len(result.AssetMatches), "pm_matches", len(result.PMMatches))

	return result, nil
}

// GetRow resolves a positional row address against the workbook the kind
// reads from: the PM schedule for PM, the asset registry for Asset and CM.
// Returns common.ErrorNotFound for an unknown sheet or row.
func (s *SearchService) GetRow(ctx context.Context, kind models.Kind, sheetName string, rowIndex int) (map[string]string, error) {
	var wb *workbook.Workbook
	var err error

	if kind.SourceIsPM() {
		wb, err = s.loadPM()
	} else {
		wb, err = s.loadAsset()
	}
	if err != nil {
		return nil, err
	}

	return workbook.Locate(wb, sheetName, rowIndex)
}
