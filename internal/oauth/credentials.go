package oauth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// CredentialsHeader carries base64 encoded JSON credentials on inbound requests.
const CredentialsHeader = "X-OAuth-Credentials"

// Credentials identifies one caller against its OAuth token endpoint.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	TokenURI     string `json:"token_uri"`
}

// Validate checks that every field is present.
func (c Credentials) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ClientID) == "" {
		missing = append(missing, "client_id")
	}
	if strings.TrimSpace(c.ClientSecret) == "" {
		missing = append(missing, "client_secret")
	}
	if strings.TrimSpace(c.RefreshToken) == "" {
		missing = append(missing, "refresh_token")
	}
	if strings.TrimSpace(c.TokenURI) == "" {
		missing = append(missing, "token_uri")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// DecodeCredentials parses the value of the credentials header.
func DecodeCredentials(header string) (Credentials, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Credentials{}, &CredentialDecodeError{Err: errors.New("header is empty")}
	}

	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return Credentials{}, &CredentialDecodeError{Err: fmt.Errorf("decode base64: %w", err)}
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, &CredentialDecodeError{Err: fmt.Errorf("decode json: %w", err)}
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, &CredentialDecodeError{Err: err}
	}
	return creds, nil
}

// EncodeCredentials produces a header value for creds.
func EncodeCredentials(creds Credentials) (string, error) {
	raw, err := json.Marshal(creds)
	if err != nil {
		return "", fmt.Errorf("encode credentials: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// LoadCredentialsFile reads credentials from an authorized-user JSON file
// such as oauth-token.json. Extra fields in the file are ignored.
func LoadCredentialsFile(path string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("credentials file %s: %w", path, err)
	}
	return creds, nil
}
