package sheets_client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpreadsheetIDParsing(t *testing.T) {
	id, err := ParseSpreadsheetID("https://docs.google.com/spreadsheets/d/1s7S1Abp8kAJEkReV10omef_ETZXKB2vHKPook49HpFk/edit#gid=1649530432")
	require.Nil(t, err)
	require.Equal(t, "1s7S1Abp8kAJEkReV10omef_ETZXKB2vHKPook49HpFk", id)

	id, err = ParseSpreadsheetID("1s7S1Abp8kAJEkReV10omef_ETZXKB2vHKPook49HpFk")
	require.Nil(t, err)
	require.Equal(t, "1s7S1Abp8kAJEkReV10omef_ETZXKB2vHKPook49HpFk", id)

	_, err = ParseSpreadsheetID("https://docs.example.com/not-a-spreadsheet")
	require.Regexp(t, "invalid Google Sheets spreadsheet ID or URL: .*", err)
}

func TestQualifyRange(t *testing.T) {
	require.Equal(t, "Sheet1!A1:D10", QualifyRange("Sheet1", "A1:D10"))
}
