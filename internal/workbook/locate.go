package workbook

import (
	"fmt"

	"github.com/metco-eng/fieldvault/internal/common"
)

// Locate returns row rowIndex of the named sheet as a column→value map.
// The address is positional: it matches what a search over the same load
// would have reported, but nothing ties it to the file across edits.
// Returns common.ErrorNotFound for an unknown sheet or an out-of-range index.
func Locate(wb *Workbook, sheetName string, rowIndex int) (map[string]string, error) {
	table, ok := wb.Sheets[sheetName]
	if !ok {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, common.ErrorNotFound)
	}

	data, ok := table.RowMap(rowIndex)
	if !ok {
		return nil, fmt.Errorf("row %d of sheet %q: %w", rowIndex, sheetName, common.ErrorNotFound)
	}

	return data, nil
}
