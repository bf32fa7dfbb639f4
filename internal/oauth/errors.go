package oauth

import (
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// CredentialDecodeError reports a malformed credentials header.
type CredentialDecodeError struct {
	Err error
}

func (e *CredentialDecodeError) Error() string {
	return fmt.Sprintf("invalid OAuth credentials in header: %v", e.Err)
}

func (e *CredentialDecodeError) Unwrap() error {
	return e.Err
}

// TokenExchangeError reports a failed refresh-token exchange.
type TokenExchangeError struct {
	// StatusCode is the token endpoint's HTTP status, 0 when no response was received.
	StatusCode int
	Err        error
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("failed to obtain access token: %v", e.Err)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// ClientFault reports whether the token endpoint rejected the credentials
// themselves, as opposed to an unreachable or failing endpoint.
func (e *TokenExchangeError) ClientFault() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

func newTokenExchangeError(err error) *TokenExchangeError {
	tokenErr := &TokenExchangeError{Err: err}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		tokenErr.StatusCode = retrieveErr.Response.StatusCode
	}
	return tokenErr
}
