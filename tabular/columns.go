// Package tabular maps between the raw cell grids exchanged with the
// Sheets API and ordered collections of name/value records.
package tabular

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"google.golang.org/api/sheets/v4"
)

// Column is one logical field and its stable position within a row's raw
// cell array.
type Column struct {
	Name              string `json:"name"`
	SourceColumnIndex int    `json:"sourceColumnIndex"`
}

// Record is one logical row as a name->value mapping. Key order follows
// column positional order, so records are ordered maps rather than plain
// maps.
type Record = *orderedmap.OrderedMap[string, any]

// NewRecord returns an empty Record.
func NewRecord() Record {
	return orderedmap.New[string, any]()
}

// ColumnsFromHeader derives columns from a designated header row: each cell
// becomes a column named by its decoded value, positioned at its index
// within the row.
func ColumnsFromHeader(header []*sheets.CellData, format Format) []Column {
	var cols []Column
	for i, cell := range header {
		var name string
		if v, ok := DecodeCell(cell, format); ok {
			name = valueString(v)
		}
		cols = append(cols, Column{Name: name, SourceColumnIndex: i})
	}
	return cols
}

// ColumnsFromRecords derives columns as the union of all record keys in
// first-seen order. Records need not share a uniform key set; each new key
// takes the next unused index.
func ColumnsFromRecords(records []Record) []Column {
	return appendRecordColumns(nil, records)
}

// MergeColumns extends header-derived columns with any record key not
// already present, preserving the header's ordering and appending new
// fields at the end. Name matching is case-insensitive; the stored name
// keeps the casing of the header or of the first record that introduced it.
func MergeColumns(header []Column, records []Record) []Column {
	var cols = make([]Column, len(header))
	copy(cols, header)
	return appendRecordColumns(cols, records)
}

func appendRecordColumns(cols []Column, records []Record) []Column {
	var seen = make(map[string]struct{}, len(cols))
	for _, col := range cols {
		seen[strings.ToLower(col.Name)] = struct{}{}
	}
	for _, record := range records {
		for pair := record.Oldest(); pair != nil; pair = pair.Next() {
			var key = strings.ToLower(pair.Key)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			cols = append(cols, Column{Name: pair.Key, SourceColumnIndex: len(cols)})
		}
	}
	return cols
}
