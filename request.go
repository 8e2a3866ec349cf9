package main

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/superblocksteam/gsheets/a1"
	cerrors "github.com/superblocksteam/gsheets/go/connector-errors"
	"github.com/superblocksteam/gsheets/sheets_client"
	"github.com/superblocksteam/gsheets/tabular"
	"github.com/tidwall/gjson"
)

type actionType string

const (
	actionRead       actionType = "READ"
	actionReadRange  actionType = "READ_RANGE"
	actionAppend     actionType = "APPEND"
	actionCreateRows actionType = "CREATE_ROWS"
	actionClear      actionType = "CLEAR"
)

type destinationType string

const (
	destinationAppend    destinationType = "APPEND"
	destinationRowNumber destinationType = "ROW_NUMBER"
)

// actionRequest is one validated action against one sheet. The host hands
// action properties over as a loosely-typed map; decodeActionRequest and
// validate turn that into something the flows can trust.
type actionRequest struct {
	Action                 actionType      `mapstructure:"action"`
	SpreadsheetID          string          `mapstructure:"spreadsheetId"`
	SheetTitle             string          `mapstructure:"sheetTitle"`
	Range                  string          `mapstructure:"range"`
	ExtractFirstRowHeader  bool            `mapstructure:"extractFirstRowHeader"`
	Format                 tabular.Format  `mapstructure:"format"`
	Data                   string          `mapstructure:"data"`
	WriteToDestinationType destinationType `mapstructure:"writeToDestinationType"`
	RowNumber              int             `mapstructure:"rowNumber"`
	IncludeHeaderRow       bool            `mapstructure:"includeHeaderRow"`
	PreserveHeaderRow      bool            `mapstructure:"preserveHeaderRow"`
	HeaderRowNumber        int             `mapstructure:"headerRowNumber"`

	// rows is the decoded write payload, populated during validation.
	rows []tabular.Record
}

func decodeActionRequest(properties map[string]any) (*actionRequest, error) {
	var req actionRequest
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(properties); err != nil {
		return nil, cerrors.NewUserError(err, "could not decode the action configuration")
	}
	return &req, nil
}

// headerRow is the effective header row number, defaulting to the first
// row of the sheet.
func (r *actionRequest) headerRow() int {
	if r.HeaderRowNumber > 0 {
		return r.HeaderRowNumber
	}
	return 1
}

func (r *actionRequest) validate() error {
	if r.SpreadsheetID == "" {
		return fmt.Errorf("missing required spreadsheet id")
	} else if id, err := sheets_client.ParseSpreadsheetID(r.SpreadsheetID); err != nil {
		return err
	} else {
		r.SpreadsheetID = id
	}
	if r.SheetTitle == "" {
		return fmt.Errorf("missing required sheet title")
	}
	if r.Format == "" {
		r.Format = tabular.FormattedValue
	} else if !r.Format.Valid() {
		return fmt.Errorf("invalid value format %q", r.Format)
	}
	if r.HeaderRowNumber < 0 {
		return fmt.Errorf("header row number must be positive")
	}

	switch r.Action {
	case actionRead, actionClear:
	case actionReadRange:
		if r.Range == "" {
			return fmt.Errorf("missing required range")
		} else if _, err := a1.Parse(r.Range); err != nil {
			return err
		}
	case actionAppend:
		return r.parseData()
	case actionCreateRows:
		switch r.WriteToDestinationType {
		case destinationAppend:
		case destinationRowNumber:
			if r.RowNumber <= 0 {
				return fmt.Errorf("row number must be positive")
			}
			// The data row may never overwrite the header row above it.
			if (r.IncludeHeaderRow || r.HeaderRowNumber > 0) && r.RowNumber <= r.headerRow() {
				return fmt.Errorf("row number %d must be greater than the header row number %d",
					r.RowNumber, r.headerRow())
			}
		case "":
			return fmt.Errorf("missing required write destination type")
		default:
			return fmt.Errorf("invalid write destination type %q", r.WriteToDestinationType)
		}
		return r.parseData()
	default:
		return fmt.Errorf("unsupported action %q", r.Action)
	}
	return nil
}

func (r *actionRequest) parseData() error {
	if r.Data == "" {
		return fmt.Errorf("missing required data payload")
	}
	var rows, err = parseRecords(r.Data)
	if err != nil {
		return err
	} else if len(rows) == 0 {
		return fmt.Errorf("data payload must contain at least one row")
	}
	r.rows = rows
	return nil
}

// parseRecords decodes the write payload, a JSON array of flat objects,
// preserving each object's own key order.
func parseRecords(data string) ([]tabular.Record, error) {
	if !gjson.Valid(data) {
		return nil, fmt.Errorf("malformed data payload: not valid JSON")
	}
	var parsed = gjson.Parse(data)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("malformed data payload: expected a JSON array of objects")
	}

	var records []tabular.Record
	var rowErr error
	parsed.ForEach(func(_, row gjson.Result) bool {
		if !row.IsObject() {
			rowErr = fmt.Errorf("malformed data payload: row %d is not an object", len(records))
			return false
		}
		var record = tabular.NewRecord()
		row.ForEach(func(key, value gjson.Result) bool {
			switch value.Type {
			case gjson.String:
				record.Set(key.Str, value.Str)
			case gjson.Number:
				record.Set(key.Str, value.Num)
			case gjson.True:
				record.Set(key.Str, true)
			case gjson.False:
				record.Set(key.Str, false)
			case gjson.Null:
				record.Set(key.Str, nil)
			default:
				rowErr = fmt.Errorf("malformed data payload: row %d field %q is not a scalar",
					len(records), key.Str)
				return false
			}
			return true
		})
		if rowErr != nil {
			return false
		}
		records = append(records, record)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return records, nil
}
