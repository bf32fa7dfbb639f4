package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// TokenProvider exchanges a refresh token for an access token and caches it
// for the lifetime of the provider.
type TokenProvider struct {
	creds      Credentials
	httpClient *http.Client
	token      string
}

// NewTokenProvider builds a provider for creds. httpClient bounds each
// exchange with its Timeout; nil uses http.DefaultClient.
func NewTokenProvider(creds Credentials, httpClient *http.Client) *TokenProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenProvider{creds: creds, httpClient: httpClient}
}

// AccessToken returns the cached token, or performs a refresh-token exchange
// when none is cached or forceRefresh is set. Expiry is not tracked.
func (p *TokenProvider) AccessToken(ctx context.Context, forceRefresh bool) (string, error) {
	if p.token != "" && !forceRefresh {
		return p.token, nil
	}

	cfg := &oauth2.Config{
		ClientID:     p.creds.ClientID,
		ClientSecret: p.creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  p.creds.TokenURI,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: p.creds.RefreshToken}).Token()
	if err != nil {
		return "", newTokenExchangeError(err)
	}

	p.token = tok.AccessToken
	return p.token, nil
}
