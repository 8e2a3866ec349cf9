// Package sheets_client wraps the Google Sheets and Drive APIs behind the
// narrow surface the action flows need.
package sheets_client

import (
	"context"
	"fmt"
	"regexp"

	google_auth "github.com/superblocksteam/gsheets/go/auth/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes requested for every credential: value read/write plus catalog
// listing.
var Scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

// Field mask selecting the three cell value representations from a values
// fetch.
const gridFields = "sheets(data(rowData(values(formattedValue,effectiveValue,userEnteredValue))))"

type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
}

// NewClient builds Sheets and Drive services from the datasource
// credentials.
func NewClient(ctx context.Context, creds *google_auth.CredentialConfig) (*Client, error) {
	var googleCreds, err = creds.GoogleCredentials(ctx, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("initializing Google credentials: %w", err)
	}

	sheetsSvc, err := sheets.NewService(ctx, option.WithCredentials(googleCreds))
	if err != nil {
		return nil, fmt.Errorf("building sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithCredentials(googleCreds))
	if err != nil {
		return nil, fmt.Errorf("building drive service: %w", err)
	}

	return &Client{sheets: sheetsSvc, drive: driveSvc}, nil
}

// Values scopes the client to one spreadsheet for value operations.
func (c *Client) Values(spreadsheetID string) *SpreadsheetValues {
	return &SpreadsheetValues{svc: c.sheets, spreadsheetID: spreadsheetID}
}

// SpreadsheetValues performs value reads and writes against a single
// spreadsheet. Range expressions must be fully qualified as
// "<sheetTitle>!<A1-range>".
type SpreadsheetValues struct {
	svc           *sheets.Service
	spreadsheetID string
}

// GetValues fetches the raw cell grid for a range. Rows may be ragged and
// trailing empty rows are not returned.
func (v *SpreadsheetValues) GetValues(ctx context.Context, rangeExpr string) ([][]*sheets.CellData, error) {
	var resp, err = v.svc.Spreadsheets.
		Get(v.spreadsheetID).
		Ranges(rangeExpr).
		Fields(gridFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetching values of range %s: %w", rangeExpr, err)
	} else if err := checkStatus("fetching values", resp.HTTPStatusCode); err != nil {
		return nil, err
	} else if ll := len(resp.Sheets); ll != 1 {
		return nil, fmt.Errorf("wrong number of sheets in response: %d but expected 1", ll)
	} else if ll = len(resp.Sheets[0].Data); ll != 1 {
		return nil, fmt.Errorf("wrong number of sheet data grids: %d but expected 1", ll)
	}

	var grid [][]*sheets.CellData
	for _, row := range resp.Sheets[0].Data[0].RowData {
		grid = append(grid, row.Values)
	}
	return grid, nil
}

// UpdateValues overwrites a range with the given rows.
func (v *SpreadsheetValues) UpdateValues(ctx context.Context, rangeExpr string, rows [][]any) (*sheets.UpdateValuesResponse, error) {
	var resp, err = v.svc.Spreadsheets.Values.
		Update(v.spreadsheetID, rangeExpr, &sheets.ValueRange{Values: toValueRows(rows)}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("updating values of range %s: %w", rangeExpr, err)
	} else if err := checkStatus("updating values", resp.HTTPStatusCode); err != nil {
		return nil, err
	}
	return resp, nil
}

// AppendValues appends rows after the table detected at the given range
// and returns the assigned range.
func (v *SpreadsheetValues) AppendValues(ctx context.Context, rangeExpr string, rows [][]any) (*sheets.AppendValuesResponse, error) {
	var resp, err = v.svc.Spreadsheets.Values.
		Append(v.spreadsheetID, rangeExpr, &sheets.ValueRange{Values: toValueRows(rows)}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("appending values at range %s: %w", rangeExpr, err)
	} else if err := checkStatus("appending values", resp.HTTPStatusCode); err != nil {
		return nil, err
	}
	return resp, nil
}

// ClearValues blanks every cell in a range.
func (v *SpreadsheetValues) ClearValues(ctx context.Context, rangeExpr string) (*sheets.ClearValuesResponse, error) {
	var resp, err = v.svc.Spreadsheets.Values.
		Clear(v.spreadsheetID, rangeExpr, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("clearing range %s: %w", rangeExpr, err)
	} else if err := checkStatus("clearing values", resp.HTTPStatusCode); err != nil {
		return nil, err
	}
	return resp, nil
}

func checkStatus(op string, code int) error {
	if code < 200 || code >= 300 {
		return fmt.Errorf("%s: unexpected status %d", op, code)
	}
	return nil
}

func toValueRows(rows [][]any) [][]interface{} {
	var out = make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out
}

// QualifyRange prefixes a range expression with its sheet title, as the
// values API requires.
func QualifyRange(sheetTitle, rangeExpr string) string {
	return fmt.Sprintf("%s!%s", sheetTitle, rangeExpr)
}

// Example: https://docs.google.com/spreadsheets/d/1s7S1Abp8kAJEkReV10omef_ETZXKB2vHKPook49HpFk/edit#gid=1649530432
const sheetsLinkRe = `^https://docs.google.com/spreadsheets/d/([\w\-]+)/?`

var (
	sheetsLink = regexp.MustCompile(sheetsLinkRe)
	bareID     = regexp.MustCompile(`^[\w\-]+$`)
)

// ParseSpreadsheetID accepts either a bare spreadsheet ID or a full Google
// Sheets URL and returns the ID.
func ParseSpreadsheetID(s string) (string, error) {
	if bareID.MatchString(s) {
		return s, nil
	}
	var matches = sheetsLink.FindStringSubmatch(s)
	if len(matches) != 2 || len(matches[1]) == 0 {
		return "", fmt.Errorf("invalid Google Sheets spreadsheet ID or URL: %s", s)
	}
	return matches[1], nil
}
