package main

import (
	"context"
	"fmt"

	"github.com/superblocksteam/gsheets/a1"
	"github.com/superblocksteam/gsheets/sheets_client"
	"github.com/superblocksteam/gsheets/tabular"
	"google.golang.org/api/sheets/v4"
)

// valuesClient is the slice of the Sheets API the action flows consume.
// All range expressions are fully qualified with a sheet title.
type valuesClient interface {
	GetValues(ctx context.Context, rangeExpr string) ([][]*sheets.CellData, error)
	UpdateValues(ctx context.Context, rangeExpr string, rows [][]any) (*sheets.UpdateValuesResponse, error)
	AppendValues(ctx context.Context, rangeExpr string, rows [][]any) (*sheets.AppendValuesResponse, error)
	ClearValues(ctx context.Context, rangeExpr string) (*sheets.ClearValuesResponse, error)
}

var _ valuesClient = (*sheets_client.SpreadsheetValues)(nil)

type executor struct {
	client valuesClient
	sheet  string
}

func (e *executor) qualify(rangeExpr string) string {
	return sheets_client.QualifyRange(e.sheet, rangeExpr)
}

// executeAction runs one validated action as a sequential chain of remote
// calls. A failed call aborts the whole action; errors carry the action's
// name as context.
func executeAction(ctx context.Context, client valuesClient, req *actionRequest) (any, error) {
	var e = &executor{client: client, sheet: req.SheetTitle}

	var result any
	var err error
	switch req.Action {
	case actionRead, actionReadRange:
		result, err = e.read(ctx, req)
	case actionAppend:
		result, err = e.appendLegacy(ctx, req)
	case actionCreateRows:
		result, err = e.createRows(ctx, req)
	case actionClear:
		result, err = e.clear(ctx, req)
	default:
		err = fmt.Errorf("unsupported action %q", req.Action)
	}
	if err != nil {
		return nil, fmt.Errorf("executing %s: %w", req.Action, err)
	}
	return result, nil
}

// read covers both the whole-sheet and explicit-range read actions.
//
// When a header is extracted it always comes from the designated header
// row. An explicit range gives up its own first row to the header only
// when it starts at that header row; a range starting anywhere else is
// fetched unshifted, and the column-name offset re-aligns names with the
// range's starting column.
func (e *executor) read(ctx context.Context, req *actionRequest) ([]tabular.Record, error) {
	var headerRow = req.headerRow()

	var columns []tabular.Column
	if req.ExtractFirstRowHeader {
		var err error
		if columns, err = e.headerColumns(ctx, headerRow, req.Format); err != nil {
			return nil, err
		}
	}

	var offset int
	var dataRange string
	if req.Action == actionReadRange {
		var rng, err = a1.Parse(req.Range)
		if err != nil {
			return nil, err
		}
		if req.ExtractFirstRowHeader && rng.StartRow == headerRow {
			if rng.Height() == 1 {
				// The header consumed the only row of the range.
				return []tabular.Record{}, nil
			}
			rng = rng.ShrinkTopRow()
		}
		offset = a1.ColumnIndex(rng.StartColumn)
		dataRange = rng.String()
	} else if req.ExtractFirstRowHeader {
		dataRange = a1.FromRow(headerRow + 1)
	} else {
		dataRange = a1.WholeSheet()
	}

	var grid, err = e.client.GetValues(ctx, e.qualify(dataRange))
	if err != nil {
		return nil, err
	}
	return tabular.ProjectToRecords(grid, columns, offset, req.Format), nil
}

// headerColumns fetches the designated header row across the maximal
// column extent. An empty result is an error here; callers that tolerate a
// missing header resolve columns differently.
func (e *executor) headerColumns(ctx context.Context, headerRow int, format tabular.Format) ([]tabular.Column, error) {
	var grid, err = e.client.GetValues(ctx, e.qualify(a1.RowSpan(headerRow)))
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("row %d doesn't have a header", headerRow)
	}
	return tabular.ColumnsFromHeader(grid[0], format), nil
}

// appendLegacy is the old append action: one whole-sheet fetch resolves
// both the header columns and the row count, then rows go in after the
// last existing row.
func (e *executor) appendLegacy(ctx context.Context, req *actionRequest) (*sheets.AppendValuesResponse, error) {
	var grid, err = e.client.GetValues(ctx, e.qualify(a1.WholeSheet()))
	if err != nil {
		return nil, err
	}

	var columns []tabular.Column
	if len(grid) > 0 {
		columns = tabular.ColumnsFromHeader(grid[0], req.Format)
	}
	rows, err := tabular.ProjectToGrid(req.rows, columns)
	if err != nil {
		return nil, err
	}
	return e.client.AppendValues(ctx, e.qualify(a1.FromRow(len(grid)+1)), rows)
}

func (e *executor) createRows(ctx context.Context, req *actionRequest) (any, error) {
	if req.WriteToDestinationType == destinationRowNumber {
		return e.createRowsAtRowNumber(ctx, req)
	}
	return e.createRowsAppend(ctx, req)
}

func (e *executor) createRowsAppend(ctx context.Context, req *actionRequest) (*sheets.AppendValuesResponse, error) {
	var grid, err = e.client.GetValues(ctx, e.qualify(a1.WholeSheet()))
	if err != nil {
		return nil, err
	}

	var headerRow = req.headerRow()
	var rowCount = len(grid)
	if headerRow > rowCount {
		rowCount = headerRow
	}

	var columns []tabular.Column
	if req.IncludeHeaderRow {
		// Merge any existing header with fields introduced by the new
		// rows, then rewrite the full header row.
		var headerCells []*sheets.CellData
		if headerRow <= len(grid) {
			headerCells = grid[headerRow-1]
		}
		columns = tabular.MergeColumns(tabular.ColumnsFromHeader(headerCells, req.Format), req.rows)
		if err := e.writeHeader(ctx, headerRow, columns, true); err != nil {
			return nil, err
		}
	} else {
		columns = tabular.ColumnsFromRecords(req.rows)
	}

	rows, err := tabular.ProjectToGrid(req.rows, columns)
	if err != nil {
		return nil, err
	}
	return e.client.AppendValues(ctx, e.qualify(a1.FromRow(rowCount+1)), rows)
}

func (e *executor) createRowsAtRowNumber(ctx context.Context, req *actionRequest) (*sheets.UpdateValuesResponse, error) {
	var columns = tabular.ColumnsFromRecords(req.rows)

	if req.IncludeHeaderRow {
		if err := e.writeHeader(ctx, req.headerRow(), columns, false); err != nil {
			return nil, err
		}
	}

	var rows, err = tabular.ProjectToGrid(req.rows, columns)
	if err != nil {
		return nil, err
	}

	var destination = a1.Span(req.RowNumber, len(rows))
	if _, err := e.client.ClearValues(ctx, e.qualify(destination)); err != nil {
		return nil, err
	}
	return e.client.UpdateValues(ctx, e.qualify(destination), rows)
}

func (e *executor) writeHeader(ctx context.Context, headerRow int, columns []tabular.Column, clearFirst bool) error {
	if clearFirst {
		if _, err := e.client.ClearValues(ctx, e.qualify(a1.RowSpan(headerRow))); err != nil {
			return err
		}
	}

	var names = make([]any, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	var _, err = e.client.UpdateValues(ctx, e.qualify(a1.RowSpan(headerRow)), [][]any{names})
	return err
}

// clear blanks the whole sheet, or everything below the header row when
// the header is preserved.
func (e *executor) clear(ctx context.Context, req *actionRequest) (*sheets.ClearValuesResponse, error) {
	var rangeExpr = a1.WholeSheet()
	if req.PreserveHeaderRow {
		rangeExpr = a1.FromRow(req.headerRow() + 1)
	}
	return e.client.ClearValues(ctx, e.qualify(rangeExpr))
}
