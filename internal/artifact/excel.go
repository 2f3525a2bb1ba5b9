// Package artifact renders a submitted record into its two derived files:
// a single-row tabular export and a formatted PDF document with grouped
// image galleries. Both land in the per-submission output directory.
package artifact

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/metco-eng/fieldvault/internal/record"
	"github.com/metco-eng/fieldvault/internal/server/models"
	"github.com/metco-eng/fieldvault/internal/workbook"
)

const exportSheet = "PM_Records"

// WriteTabularExport writes a one-row xlsx containing only the fields of
// the PM allow-list (in allow-list order) plus the notes field. Fields the
// record does not carry are left out entirely.
func WriteTabularExport(path string, fields models.Fields) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("tabular export: %w", err)
	}

	var header, values []any
	for _, col := range append(append([]string{}, workbook.PMSearchColumns...), record.NotesKey) {
		if !fields.Has(col) {
			continue
		}
		header = append(header, col)
		values = append(values, fields.Get(col))
	}

	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("tabular export header: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A2", &values); err != nil {
		return fmt.Errorf("tabular export row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save tabular export %s: %w", path, err)
	}
	return nil
}
