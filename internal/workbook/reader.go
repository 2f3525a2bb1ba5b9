package workbook

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Header row offsets of the two maintenance sources. The asset registry
// keeps a title row above its header, the PM schedule does not.
const (
	AssetHeaderRow = 1
	PMHeaderRow    = 0
)

// LoadSheets reads every sheet of the workbook at path into a Table, taking
// row headerRow (0-based) as the column header and everything below it as
// data. A missing file yields an empty workbook and no error; a file that
// exists but cannot be parsed is a hard error, with no partial result.
func LoadSheets(path string, headerRow int) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Workbook{Sheets: map[string]*Table{}}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{Sheets: map[string]*Table{}}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		table := &Table{}
		if headerRow < len(rows) {
			table.Columns = rows[headerRow]
			table.Rows = rows[headerRow+1:]
		}

		wb.SheetNames = append(wb.SheetNames, sheet)
		wb.Sheets[sheet] = table
	}

	return wb, nil
}
