package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	log "github.com/sirupsen/logrus"
	google_auth "github.com/superblocksteam/gsheets/go/auth/google"
	cerrors "github.com/superblocksteam/gsheets/go/connector-errors"
	schemagen "github.com/superblocksteam/gsheets/go/schema-gen"
	"github.com/superblocksteam/gsheets/sheets_client"
)

// driver implements the boilerplate.Connector interface.
type driver struct{}

type config struct {
	Credentials *google_auth.CredentialConfig `json:"credentials" jsonschema:"title=Google Credentials"`
}

// Validate returns an error if the config is not well-formed.
func (c config) Validate() error {
	if c.Credentials == nil {
		return fmt.Errorf("missing required Google credentials")
	}
	return c.Credentials.Validate()
}

func parseConfig(raw json.RawMessage) (*config, error) {
	var cfg config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		// The source error carries JSON minutiae the user can't act on;
		// keep it for the log and hand the user the short message.
		return nil, cerrors.NewUserError(err, "could not parse the datasource configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type connectorSpec struct {
	ConfigurationSchema *jsonschema.Schema      `json:"configurationSchema"`
	OAuth2              *google_auth.OAuth2Spec `json:"oauth2"`
}

func (driver) Spec(ctx context.Context) (any, error) {
	return &connectorSpec{
		ConfigurationSchema: schemagen.GenerateSchema("Google Sheets Datasource", config{}),
		OAuth2:              google_auth.Spec(sheets_client.Scopes...),
	}, nil
}

func (driver) Test(ctx context.Context, datasource json.RawMessage) error {
	var cfg, err = parseConfig(datasource)
	if err != nil {
		return err
	}
	client, err := sheets_client.NewClient(ctx, cfg.Credentials)
	if err != nil {
		return err
	}
	return client.ProbeConnectivity(ctx)
}

func (driver) Metadata(ctx context.Context, datasource json.RawMessage) (any, error) {
	var cfg, err = parseConfig(datasource)
	if err != nil {
		return nil, err
	}
	client, err := sheets_client.NewClient(ctx, cfg.Credentials)
	if err != nil {
		return nil, err
	}
	return client.ListSpreadsheets(ctx)
}

func (driver) PreDelete(ctx context.Context, datasource json.RawMessage) error {
	var cfg, err = parseConfig(datasource)
	if err != nil {
		return err
	}
	return cfg.Credentials.Revoke(ctx)
}

func (driver) Execute(ctx context.Context, datasource json.RawMessage, action map[string]any) (any, error) {
	var cfg, err = parseConfig(datasource)
	if err != nil {
		return nil, err
	}

	req, err := decodeActionRequest(action)
	if err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	client, err := sheets_client.NewClient(ctx, cfg.Credentials)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"action":      req.Action,
		"spreadsheet": req.SpreadsheetID,
		"sheet":       req.SheetTitle,
	}).Info("executing action")

	return executeAction(ctx, client.Values(req.SpreadsheetID), req)
}
