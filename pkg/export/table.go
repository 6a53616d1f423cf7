// Package export renders rectangular datasets as downloadable documents.
package export

import "fmt"

// Table is an ordered rectangular dataset ready for rendering. Row cells
// align positionally with Columns; short rows are padded with empty cells
// and overlong rows are truncated.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

func (t Table) validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("export: table has no columns")
	}
	return nil
}

func (t Table) normalized() [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(row) < len(t.Columns) {
			padded := make([]string, len(t.Columns))
			copy(padded, row)
			row = padded
		}
		rows = append(rows, row[:len(t.Columns)])
	}
	return rows
}
