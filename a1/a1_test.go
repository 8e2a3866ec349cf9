package a1

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr    string
		want    Range
		wantErr bool
	}{
		{expr: "A1", want: Range{StartColumn: "A", StartRow: 1, EndColumn: "A", EndRow: 1, single: true}},
		{expr: "A1:D10", want: Range{StartColumn: "A", StartRow: 1, EndColumn: "D", EndRow: 10}},
		{expr: "ZZZ10000000", want: Range{StartColumn: "ZZZ", StartRow: 10000000, EndColumn: "ZZZ", EndRow: 10000000, single: true}},
		{expr: "C5:E9", want: Range{StartColumn: "C", StartRow: 5, EndColumn: "E", EndRow: 9}},
		{expr: "", wantErr: true},
		{expr: "Sheet1!A1:B2", wantErr: true},
		{expr: "A0", wantErr: true},
		{expr: "A1:B0", wantErr: true},
		{expr: "A5:B2", wantErr: true},
		{expr: "D1:A10", wantErr: true}, // columns run right-to-left
		{expr: "Z1:AA2", want: Range{StartColumn: "Z", StartRow: 1, EndColumn: "AA", EndRow: 2}},
		{expr: "a1:b2", wantErr: true},  // not canonical
		{expr: "A01", wantErr: true},    // not canonical
		{expr: "1A", wantErr: true},
		{expr: "A1:B", wantErr: true},
		{expr: "A:B", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				require.False(t, Validate(tt.expr))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.expr, got.String())
			require.True(t, Validate(tt.expr))
		})
	}
}

func TestShrinkTopRow(t *testing.T) {
	t.Parallel()

	r, err := Parse("A1:D10")
	require.NoError(t, err)
	require.Equal(t, 1, r.StartRow)
	require.Equal(t, 10, r.Height())

	shrunk := r.ShrinkTopRow()
	require.Equal(t, "A2:D10", shrunk.String())
	require.Equal(t, 9, shrunk.Height())

	// A single-cell range at the top keeps its end coordinates.
	single, err := Parse("B1")
	require.NoError(t, err)
	require.Equal(t, 1, single.Height())
}

func TestColumnLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index int
		label string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.label, ColumnLabel(tt.index))
		require.Equal(t, tt.index, ColumnIndex(tt.label))
	}
}

func TestOpenRanges(t *testing.T) {
	t.Parallel()

	require.Equal(t, "A1:ZZZ10000000", WholeSheet())
	require.Equal(t, "A3:ZZZ10000000", FromRow(3))
	require.Equal(t, "A2:ZZZ2", RowSpan(2))
	require.Equal(t, "A5:ZZZ7", Span(5, 3))
}
