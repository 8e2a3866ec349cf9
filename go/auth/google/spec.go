package google_auth

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OAuth2Spec describes the OAuth2 handshake the host performs on behalf of
// the connector when client credentials are used.
type OAuth2Spec struct {
	Provider                   string          `json:"provider"`
	AuthUrlTemplate            string          `json:"authUrlTemplate"`
	AccessTokenUrlTemplate     string          `json:"accessTokenUrlTemplate"`
	AccessTokenBody            string          `json:"accessTokenBody"`
	AccessTokenResponseMapJson json.RawMessage `json:"accessTokenResponseMap"`
}

func Spec(scopes ...string) *OAuth2Spec {
	authUrlTemplate := fmt.Sprintf(
		"https://accounts.google.com/o/oauth2/auth?access_type=offline&prompt=consent&client_id={{ client_id }}&redirect_uri={{ redirect_uri }}&response_type=code&scope=%s&state={{ state }}",
		strings.Join(scopes, " "),
	)

	return &OAuth2Spec{
		Provider:                   "google",
		AuthUrlTemplate:            authUrlTemplate,
		AccessTokenUrlTemplate:     "https://oauth2.googleapis.com/token",
		AccessTokenBody:            "{\"grant_type\": \"authorization_code\", \"client_id\": \"{{ client_id }}\", \"client_secret\": \"{{ client_secret }}\", \"redirect_uri\": \"{{ redirect_uri }}\", \"code\": \"{{ code }}\"}",
		AccessTokenResponseMapJson: json.RawMessage("{\"refresh_token\": \"/refresh_token\"}"),
	}
}
