package google_auth

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"resty.dev/v3"
)

const (
	SERVICE_AUTH_TYPE = "Service"
	CLIENT_AUTH_TYPE  = "Client"
)

const revokeURL = "https://oauth2.googleapis.com/revoke"

// CredentialConfig holds Google credentials as either a service account
// JSON key or OAuth2 client credentials with a refresh token.
type CredentialConfig struct {
	AuthType        string `json:"auth_type" jsonschema:"title=Authentication Type,default=Service" jsonschema_extras:"order=0"`
	CredentialsJSON string `json:"credentials_json,omitempty" jsonschema:"title=Service Account JSON" jsonschema_extras:"secret=true,multiline=true,order=1"`
	ClientID        string `json:"client_id,omitempty" jsonschema:"title=OAuth Client ID" jsonschema_extras:"order=2"`
	ClientSecret    string `json:"client_secret,omitempty" jsonschema:"title=OAuth Client Secret" jsonschema_extras:"secret=true,order=3"`
	RefreshToken    string `json:"refresh_token,omitempty" jsonschema:"title=Refresh Token" jsonschema_extras:"secret=true,order=4"`
}

// Validate returns an error if the config is not well-formed.
func (c *CredentialConfig) Validate() error {
	switch c.AuthType {
	case SERVICE_AUTH_TYPE:
		if c.CredentialsJSON == "" {
			return fmt.Errorf("missing service account credentials JSON")
		}
	case CLIENT_AUTH_TYPE:
		if c.ClientID == "" {
			return fmt.Errorf("missing client ID for oauth2")
		} else if c.ClientSecret == "" {
			return fmt.Errorf("missing client secret for oauth2")
		} else if c.RefreshToken == "" {
			return fmt.Errorf("missing refresh token for oauth2")
		}
	default:
		return fmt.Errorf("invalid credentials auth type %q", c.AuthType)
	}
	return nil
}

// GoogleCredentials builds credentials usable with option.WithCredentials.
func (c *CredentialConfig) GoogleCredentials(ctx context.Context, scopes ...string) (*google.Credentials, error) {
	switch c.AuthType {
	case SERVICE_AUTH_TYPE:
		var creds, err = google.CredentialsFromJSON(ctx, []byte(c.CredentialsJSON), scopes...)
		if err != nil {
			return nil, fmt.Errorf("parsing service account credentials: %w", err)
		}
		return creds, nil
	case CLIENT_AUTH_TYPE:
		var cfg = &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       scopes,
		}
		return &google.Credentials{
			TokenSource: cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: c.RefreshToken}),
		}, nil
	}
	return nil, fmt.Errorf("invalid credentials auth type %q", c.AuthType)
}

// Revoke invalidates the refresh token with Google. A 400 response means
// the token was already revoked or expired, which is not an error. Service
// account keys are managed by the user and are not revoked here.
func (c *CredentialConfig) Revoke(ctx context.Context) error {
	if c.AuthType != CLIENT_AUTH_TYPE {
		return nil
	}

	var client = resty.New()
	defer client.Close()

	var res, err = client.R().
		SetContext(ctx).
		SetFormData(map[string]string{"token": c.RefreshToken}).
		Post(revokeURL)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}

	if res.StatusCode() == http.StatusBadRequest {
		log.WithField("status", res.Status()).Debug("token was already revoked")
		return nil
	} else if res.IsError() {
		return fmt.Errorf("revoking token: unexpected status %s", res.Status())
	}
	return nil
}
