package tabular

import (
	"fmt"
	"strconv"

	"google.golang.org/api/sheets/v4"
)

// Format selects which of a cell's value representations is read.
type Format string

const (
	// FormattedValue reads the cell's display string.
	FormattedValue Format = "FORMATTED_VALUE"
	// EffectiveValue reads the cell's calculated value.
	EffectiveValue Format = "EFFECTIVE_VALUE"
	// UserEnteredValue reads the value as the user typed it.
	UserEnteredValue Format = "USER_ENTERED_VALUE"
)

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormattedValue, EffectiveValue, UserEnteredValue:
		return true
	}
	return false
}

// ErrorMarker is the scalar stand-in for a cell in an error state
// (#DIV/0!, #REF! and friends).
type ErrorMarker struct {
	Type    string `json:"errorType"`
	Message string `json:"message"`
}

// DecodeCell resolves one raw cell into a scalar value. The second return
// is false when the cell holds no value under the requested format, in
// which case the cell is omitted from its record entirely.
//
// The display-string format always resolves, defaulting to the empty
// string. The extended-value formats resolve string, number, boolean, and
// error marker in that priority order so that a numeric 0 or boolean false
// is never skipped as empty.
func DecodeCell(cell *sheets.CellData, format Format) (any, bool) {
	if cell == nil {
		if format == FormattedValue {
			return "", true
		}
		return nil, false
	}

	switch format {
	case EffectiveValue:
		return decodeExtended(cell.EffectiveValue)
	case UserEnteredValue:
		return decodeExtended(cell.UserEnteredValue)
	default:
		return cell.FormattedValue, true
	}
}

func decodeExtended(v *sheets.ExtendedValue) (any, bool) {
	switch {
	case v == nil:
		return nil, false
	case v.StringValue != nil:
		return *v.StringValue, true
	case v.NumberValue != nil:
		return *v.NumberValue, true
	case v.BoolValue != nil:
		return *v.BoolValue, true
	case v.ErrorValue != nil:
		return ErrorMarker{Type: v.ErrorValue.Type, Message: v.ErrorValue.Message}, true
	}
	return nil, false
}

// valueString renders a decoded cell value as a column name.
func valueString(v any) string {
	switch vv := v.(type) {
	case string:
		return vv
	case float64:
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(vv)
	case ErrorMarker:
		return vv.Type
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", vv)
	}
}
