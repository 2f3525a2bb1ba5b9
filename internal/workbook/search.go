package workbook

import "strings"

// PMSearchColumns is the fixed allow-list of searchable PM-schedule columns.
// PM sheets have a stable schema, so the scan is restricted to these; asset
// sheets carry no schema guarantee and are scanned in full.
var PMSearchColumns = []string{
	"Work Order", "PM", "Job Plan", "Parent WO", "Description", "Location", "Asset",
	"MMS #", "QR CODE", "Route", "Work Type", "Workshop", "Target Start", "Target Finish",
	"METCO COMMENT",
}

// RowMatch is one search hit: the positional address of the row plus its
// full contents at match time.
type RowMatch struct {
	SheetName string            `json:"SheetName"`
	RowIndex  int               `json:"RowIndex"`
	Data      map[string]string `json:"data"`
}

// SearchAllCells returns the rows of wb where any cell contains query as a
// case-insensitive substring. An empty query matches nothing. Results keep
// source row order, grouped by sheet in source sheet order.
func SearchAllCells(wb *Workbook, query string) []RowMatch {
	return search(wb, query, nil)
}

// SearchColumns is like SearchAllCells but only inspects the named columns;
// columns absent from a sheet are ignored for that sheet.
func SearchColumns(wb *Workbook, query string, columns []string) []RowMatch {
	if len(columns) == 0 {
		return nil
	}
	return search(wb, query, columns)
}

func search(wb *Workbook, query string, columns []string) []RowMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []RowMatch

	for _, sheet := range wb.SheetNames {
		table := wb.Sheets[sheet]

		// Map the allow-list onto this sheet's header once per sheet.
		var cols []int
		if columns != nil {
			for _, name := range columns {
				for j, col := range table.Columns {
					if col == name {
						cols = append(cols, j)
						break
					}
				}
			}
			if len(cols) == 0 {
				continue
			}
		}

		for i, row := range table.Rows {
			if !rowMatches(row, q, cols) {
				continue
			}
			data, _ := table.RowMap(i)
			matches = append(matches, RowMatch{SheetName: sheet, RowIndex: i, Data: data})
		}
	}

	return matches
}

// rowMatches scans either the whole row (cols == nil) or just the given
// column positions for the lowercased query.
func rowMatches(row []string, q string, cols []int) bool {
	if cols == nil {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), q) {
				return true
			}
		}
		return false
	}
	for _, j := range cols {
		if j < len(row) && strings.Contains(strings.ToLower(row[j]), q) {
			return true
		}
	}
	return false
}
