// Package workbook loads xlsx maintenance sources into in-memory tables and
// answers substring searches and row lookups over them. Sources are re-read
// on every call: row indexes are positional and only stable while the
// underlying file is unchanged.
package workbook

// Table is one sheet of a source workbook: an ordered header plus data rows.
// Row values are the formatted cell strings; blanks stay empty strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// RowMap returns row i as a column→value map, or false when i is out of
// bounds. Rows shorter than the header are padded with empty values.
func (t *Table) RowMap(i int) (map[string]string, bool) {
	if i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	row := t.Rows[i]
	m := make(map[string]string, len(t.Columns))
	for j, col := range t.Columns {
		if j < len(row) {
			m[col] = row[j]
		} else {
			m[col] = ""
		}
	}
	return m, true
}

// Workbook is one loaded source file: sheets by name, plus the sheet order
// from the file so results can be grouped deterministically.
type Workbook struct {
	SheetNames []string
	Sheets     map[string]*Table
}

// Empty reports whether the workbook holds no sheets (e.g. the source file
// did not exist at load time).
func (w *Workbook) Empty() bool {
	return len(w.SheetNames) == 0
}
