package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/sheets/v4"
)

func formatted(s string) *sheets.CellData {
	return &sheets.CellData{FormattedValue: s}
}

func entered(v *sheets.ExtendedValue) *sheets.CellData {
	return &sheets.CellData{UserEnteredValue: v}
}

func str(s string) *sheets.ExtendedValue   { return &sheets.ExtendedValue{StringValue: &s} }
func num(f float64) *sheets.ExtendedValue  { return &sheets.ExtendedValue{NumberValue: &f} }
func boolean(b bool) *sheets.ExtendedValue { return &sheets.ExtendedValue{BoolValue: &b} }

func record(pairs ...any) Record {
	var r = NewRecord()
	for i := 0; i < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1])
	}
	return r
}

func recordKeys(r Record) []string {
	var keys []string
	for pair := r.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func TestDecodeCellPrecedence(t *testing.T) {
	t.Parallel()

	// A numeric zero and a boolean false must resolve, not be skipped as
	// empty.
	v, ok := DecodeCell(entered(num(0)), UserEnteredValue)
	require.True(t, ok)
	require.Equal(t, float64(0), v)

	v, ok = DecodeCell(entered(boolean(false)), UserEnteredValue)
	require.True(t, ok)
	require.Equal(t, false, v)

	// String wins over number when both are set.
	both := &sheets.ExtendedValue{}
	s := "hello"
	f := 42.0
	both.StringValue, both.NumberValue = &s, &f
	v, ok = DecodeCell(entered(both), UserEnteredValue)
	require.True(t, ok)
	require.Equal(t, "hello", v)

	// Error cells resolve to a marker.
	errCell := entered(&sheets.ExtendedValue{
		ErrorValue: &sheets.ErrorValue{Type: "DIVIDE_BY_ZERO", Message: "Function DIVIDE caused a divide by zero error."},
	})
	v, ok = DecodeCell(errCell, UserEnteredValue)
	require.True(t, ok)
	require.Equal(t, "DIVIDE_BY_ZERO", v.(ErrorMarker).Type)

	// An empty extended value is absent.
	_, ok = DecodeCell(entered(&sheets.ExtendedValue{}), UserEnteredValue)
	require.False(t, ok)
	_, ok = DecodeCell(&sheets.CellData{}, EffectiveValue)
	require.False(t, ok)

	// The display-string format always resolves, defaulting to "".
	v, ok = DecodeCell(&sheets.CellData{}, FormattedValue)
	require.True(t, ok)
	require.Equal(t, "", v)
	v, ok = DecodeCell(nil, FormattedValue)
	require.True(t, ok)
	require.Equal(t, "", v)
}

func TestColumnsFromHeader(t *testing.T) {
	t.Parallel()

	cols := ColumnsFromHeader([]*sheets.CellData{formatted("Name"), formatted("stocks"), formatted("stocks")}, FormattedValue)
	require.Equal(t, []Column{
		{Name: "Name", SourceColumnIndex: 0},
		{Name: "stocks", SourceColumnIndex: 1},
		{Name: "stocks", SourceColumnIndex: 2},
	}, cols)
	for i, col := range cols {
		require.Equal(t, i, col.SourceColumnIndex)
	}
}

func TestColumnsFromRecords(t *testing.T) {
	t.Parallel()

	cols := ColumnsFromRecords([]Record{
		record("name", "a", "age", 30.0),
		record("Name", "b", "city", "Oslo"),
		record("city", "Bergen", "zip", "5003"),
	})

	// Union of keys, first-seen order, case-insensitive dedup keeping the
	// first casing.
	require.Equal(t, []Column{
		{Name: "name", SourceColumnIndex: 0},
		{Name: "age", SourceColumnIndex: 1},
		{Name: "city", SourceColumnIndex: 2},
		{Name: "zip", SourceColumnIndex: 3},
	}, cols)
}

func TestMergeColumns(t *testing.T) {
	t.Parallel()

	header := ColumnsFromHeader([]*sheets.CellData{formatted("Subname"), formatted("ACI")}, FormattedValue)
	merged := MergeColumns(header, []Record{record("Subname", "X", "NewCol", "Y")})

	require.Equal(t, []Column{
		{Name: "Subname", SourceColumnIndex: 0},
		{Name: "ACI", SourceColumnIndex: 1},
		{Name: "NewCol", SourceColumnIndex: 2},
	}, merged)

	// An empty header falls back to record-derived columns.
	merged = MergeColumns(nil, []Record{record("a", 1.0)})
	require.Equal(t, []Column{{Name: "a", SourceColumnIndex: 0}}, merged)
}

func TestProjectToRecordsWithoutColumns(t *testing.T) {
	t.Parallel()

	// Duplicate raw header values are never treated as field names unless
	// extraction was requested.
	grid := [][]*sheets.CellData{
		{formatted("Name"), formatted("stocks"), formatted("stocks")},
		{formatted("Row1"), formatted("57"), formatted("763")},
	}
	records := ProjectToRecords(grid, nil, 0, FormattedValue)
	require.Len(t, records, 2)

	require.Equal(t, []string{"column0", "column1", "column2"}, recordKeys(records[0]))
	v, _ := records[0].Get("column0")
	require.Equal(t, "Name", v)
	v, _ = records[1].Get("column2")
	require.Equal(t, "763", v)
}

func TestProjectToRecordsWithColumnsAndOffset(t *testing.T) {
	t.Parallel()

	columns := []Column{
		{Name: "A", SourceColumnIndex: 0},
		{Name: "B", SourceColumnIndex: 1},
		{Name: "C", SourceColumnIndex: 2},
	}

	// Grid fetched from a sub-range starting at column B: offset shifts
	// names by one, and positions past the column list get placeholders.
	grid := [][]*sheets.CellData{
		{formatted("b"), formatted("c"), formatted("d")},
	}
	records := ProjectToRecords(grid, columns, 1, FormattedValue)
	require.Equal(t, []string{"B", "C", "column3"}, recordKeys(records[0]))
}

func TestProjectToRecordsOmitsAbsentCells(t *testing.T) {
	t.Parallel()

	columns := []Column{
		{Name: "a", SourceColumnIndex: 0},
		{Name: "b", SourceColumnIndex: 1},
		{Name: "c", SourceColumnIndex: 2},
	}
	grid := [][]*sheets.CellData{
		{entered(str("x"))},                                            // short row
		{entered(str("x")), entered(&sheets.ExtendedValue{}), entered(num(3))}, // blank middle cell
	}
	records := ProjectToRecords(grid, columns, 0, UserEnteredValue)

	require.Equal(t, []string{"a"}, recordKeys(records[0]))
	require.Equal(t, []string{"a", "c"}, recordKeys(records[1]))
}

func TestProjectToGrid(t *testing.T) {
	t.Parallel()

	columns := []Column{
		{Name: "Subname", SourceColumnIndex: 0},
		{Name: "ACI", SourceColumnIndex: 1},
		{Name: "NewCol", SourceColumnIndex: 2},
	}

	rows, err := ProjectToGrid([]Record{record("Subname", "X", "NewCol", "Y")}, columns)
	require.NoError(t, err)
	require.Equal(t, [][]any{{"X", nil, "Y"}}, rows)

	// Field names match columns case-insensitively.
	rows, err = ProjectToGrid([]Record{record("subname", "X", "aci", "Y")}, columns)
	require.NoError(t, err)
	require.Equal(t, [][]any{{"X", "Y"}}, rows)
}

func TestProjectToGridUnmatchedKey(t *testing.T) {
	t.Parallel()

	columns := []Column{
		{Name: "Subname", SourceColumnIndex: 0},
		{Name: "ACI", SourceColumnIndex: 1},
	}
	_, err := ProjectToGrid([]Record{record("Subname", "X", "Bogus", "Y")}, columns)
	require.Error(t, err)
	// The error enumerates every known column name.
	require.Contains(t, err.Error(), `"Bogus"`)
	require.Contains(t, err.Error(), "Subname")
	require.Contains(t, err.Error(), "ACI")
}

func TestProjectToGridWithoutColumns(t *testing.T) {
	t.Parallel()

	// Legacy column-less mode: values in record key order, no validation.
	rows, err := ProjectToGrid([]Record{
		record("a", 1.0, "b", 2.0),
		record("c", true),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, [][]any{{1.0, 2.0}, {true}}, rows)
}

func TestGridRecordRoundTrip(t *testing.T) {
	t.Parallel()

	// Records -> columns -> grid -> records reproduces the original
	// values.
	records := []Record{
		record("name", "a", "count", 1.0, "ok", true),
		record("name", "b", "count", 0.0, "ok", false),
	}
	columns := ColumnsFromRecords(records)
	rows, err := ProjectToGrid(records, columns)
	require.NoError(t, err)

	grid := make([][]*sheets.CellData, len(rows))
	for i, row := range rows {
		for _, v := range row {
			switch vv := v.(type) {
			case string:
				grid[i] = append(grid[i], entered(str(vv)))
			case float64:
				grid[i] = append(grid[i], entered(num(vv)))
			case bool:
				grid[i] = append(grid[i], entered(boolean(vv)))
			default:
				t.Fatalf("unexpected value %#v", v)
			}
		}
	}

	back := ProjectToRecords(grid, columns, 0, UserEnteredValue)
	require.Len(t, back, len(records))
	for i, original := range records {
		for pair := original.Oldest(); pair != nil; pair = pair.Next() {
			got, ok := back[i].Get(pair.Key)
			require.True(t, ok, "missing key %s", pair.Key)
			require.Equal(t, pair.Value, got)
		}
	}
}
