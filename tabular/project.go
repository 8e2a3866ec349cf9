package tabular

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// placeholderName labels a cell position that has no named column. The
// exact "columnN" form is relied upon by downstream consumers and must not
// change.
func placeholderName(absoluteIndex int) string {
	return fmt.Sprintf("column%d", absoluteIndex)
}

// ProjectToRecords assembles a raw grid into one record per row. Cell i of
// a row is keyed by columns[i+offset].Name when that column exists, and by
// a generated "columnN" label (N the zero-based absolute index) otherwise.
// The offset aligns the column list with grids fetched from a sub-range
// that does not start at column A. Cells with no value under the format are
// omitted, never emitted as empty or null.
func ProjectToRecords(grid [][]*sheets.CellData, columns []Column, offset int, format Format) []Record {
	var records = make([]Record, 0, len(grid))
	for _, row := range grid {
		var record = NewRecord()
		for i, cell := range row {
			var value, ok = DecodeCell(cell, format)
			if !ok {
				continue
			}
			var absolute = i + offset
			var name = placeholderName(absolute)
			if absolute < len(columns) {
				name = columns[absolute].Name
			}
			record.Set(name, value)
		}
		records = append(records, record)
	}
	return records
}

// ProjectToGrid assembles records into raw rows for transmission, placing
// each field at its column's source index. Field names match columns
// case-insensitively. A record field matched by no column is an error that
// enumerates every known column name.
//
// When no columns were resolved at all, values are instead placed in each
// record's own key order with no validation. That legacy behavior cannot
// guarantee a consistent column order across records with differing key
// sets, but it is preserved as-is for compatibility.
func ProjectToGrid(records []Record, columns []Column) ([][]any, error) {
	var rows = make([][]any, 0, len(records))

	if len(columns) == 0 {
		for _, record := range records {
			var row []any
			for pair := record.Oldest(); pair != nil; pair = pair.Next() {
				row = append(row, pair.Value)
			}
			rows = append(rows, row)
		}
		return rows, nil
	}

	var byName = make(map[string]Column, len(columns))
	var names = make([]string, 0, len(columns))
	for _, col := range columns {
		byName[strings.ToLower(col.Name)] = col
		names = append(names, col.Name)
	}

	for _, record := range records {
		var row []any
		for pair := record.Oldest(); pair != nil; pair = pair.Next() {
			var col, ok = byName[strings.ToLower(pair.Key)]
			if !ok {
				return nil, fmt.Errorf("field %q does not match any column; known columns: %s",
					pair.Key, strings.Join(names, ", "))
			}
			for len(row) <= col.SourceColumnIndex {
				row = append(row, nil)
			}
			row[col.SourceColumnIndex] = pair.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}
