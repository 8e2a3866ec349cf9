// Package a1 parses and manipulates spreadsheet range expressions in A1
// notation ("A1", "B2:D10").
package a1

import (
	"fmt"
	"regexp"
	"strconv"
)

// The Sheets API caps usable ranges well below these bounds, so they stand
// in for "to the end of the sheet" in open-ended ranges.
const (
	MaxColumn = "ZZZ"
	MaxRow    = 10000000
)

var rangeRe = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)(?::([A-Za-z]+)([0-9]+))?$`)

// Range is a parsed A1 range expression. A single-cell expression has equal
// start and end coordinates and serializes back without the ":" part.
type Range struct {
	StartColumn string
	StartRow    int
	EndColumn   string
	EndRow      int

	single bool
}

// Parse decomposes an A1 range expression. Expressions that are
// syntactically malformed, reference row zero, run bottom-to-top, or do not
// round-trip through String are rejected.
func Parse(expr string) (Range, error) {
	var m = rangeRe.FindStringSubmatch(expr)
	if m == nil {
		return Range{}, fmt.Errorf("invalid range %q", expr)
	}

	var r = Range{StartColumn: m[1], single: m[3] == ""}
	r.StartRow, _ = strconv.Atoi(m[2])
	if r.single {
		r.EndColumn, r.EndRow = r.StartColumn, r.StartRow
	} else {
		r.EndColumn = m[3]
		r.EndRow, _ = strconv.Atoi(m[4])
	}

	if r.StartRow == 0 || r.EndRow == 0 {
		return Range{}, fmt.Errorf("invalid range %q: rows are numbered from 1", expr)
	} else if r.EndRow < r.StartRow {
		return Range{}, fmt.Errorf("invalid range %q: end row precedes start row", expr)
	} else if ColumnIndex(r.EndColumn) < ColumnIndex(r.StartColumn) {
		return Range{}, fmt.Errorf("invalid range %q: end column precedes start column", expr)
	} else if r.String() != expr {
		// Catches non-canonical but parseable forms, like lowercase column
		// letters or zero-padded row numbers.
		return Range{}, fmt.Errorf("invalid range %q: not in canonical form (expected %q)", expr, r.String())
	}
	return r, nil
}

// Validate reports whether expr is a well-formed A1 range expression.
func Validate(expr string) bool {
	var _, err = Parse(expr)
	return err == nil
}

// String returns the canonical form of the range.
func (r Range) String() string {
	if r.single {
		return fmt.Sprintf("%s%d", r.StartColumn, r.StartRow)
	}
	return fmt.Sprintf("%s%d:%s%d", r.StartColumn, r.StartRow, r.EndColumn, r.EndRow)
}

// Height is the number of rows the range spans.
func (r Range) Height() int {
	return r.EndRow - r.StartRow + 1
}

// ShrinkTopRow returns the range with its first row given up to a header.
// Shrinking a height-1 range is degenerate; callers must treat that case as
// "no data rows remain" instead.
func (r Range) ShrinkTopRow() Range {
	r.StartRow++
	r.single = false
	return r
}

// ColumnLabel converts a zero-based column index to its letter label
// (0 => "A", 26 => "AA").
func ColumnLabel(col int) string {
	var label string
	for col >= 0 {
		label = string(rune('A'+(col%26))) + label
		col = col/26 - 1
	}
	return label
}

// ColumnIndex converts a column letter label to its zero-based index.
func ColumnIndex(label string) int {
	var col int
	for _, c := range label {
		col = col*26 + int(c-'A') + 1
	}
	return col - 1
}

// WholeSheet is the open range covering every addressable cell.
func WholeSheet() string {
	return fmt.Sprintf("A1:%s%d", MaxColumn, MaxRow)
}

// FromRow is the open range from the given row to the end of the sheet.
func FromRow(row int) string {
	return fmt.Sprintf("A%d:%s%d", row, MaxColumn, MaxRow)
}

// RowSpan is the range covering the full width of a single row.
func RowSpan(row int) string {
	return fmt.Sprintf("A%d:%s%d", row, MaxColumn, row)
}

// Span is the range covering the full width of `height` rows starting at
// startRow.
func Span(startRow, height int) string {
	return fmt.Sprintf("A%d:%s%d", startRow, MaxColumn, startRow+height-1)
}
