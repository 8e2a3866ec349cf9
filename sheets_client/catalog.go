package sheets_client

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// CatalogEntry identifies one spreadsheet document visible to the
// credentials.
type CatalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListSpreadsheets walks the Drive catalog of spreadsheet documents. Pages
// are fetched strictly sequentially; each fetch depends on the previous
// page's continuation token.
func (c *Client) ListSpreadsheets(ctx context.Context) ([]CatalogEntry, error) {
	var out []CatalogEntry
	var pageToken string

	for {
		var call = c.drive.Files.List().
			Q(fmt.Sprintf("mimeType='%s' and trashed=false", spreadsheetMimeType)).
			Fields("nextPageToken,files(id,name)").
			PageSize(1000).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		var resp, err = call.Do()
		if err != nil {
			return nil, fmt.Errorf("listing spreadsheets: %w", err)
		} else if err := checkStatus("listing spreadsheets", resp.HTTPStatusCode); err != nil {
			return nil, err
		}

		for _, file := range resp.Files {
			out = append(out, CatalogEntry{ID: file.Id, Name: file.Name})
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	log.WithField("count", len(out)).Debug("listed spreadsheets")
	return out, nil
}

// ProbeConnectivity verifies the credentials can reach the catalog at all.
func (c *Client) ProbeConnectivity(ctx context.Context) error {
	var resp, err = c.drive.Files.List().
		Q(fmt.Sprintf("mimeType='%s'", spreadsheetMimeType)).
		Fields("files(id)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}
	return checkStatus("verifying credentials", resp.HTTPStatusCode)
}
