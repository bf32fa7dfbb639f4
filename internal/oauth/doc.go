// Package oauth exchanges per-request OAuth client credentials and a refresh
// token for a short-lived bearer access token.
//
// Credentials arrive with every inbound request and are never persisted. A
// TokenProvider is built for one request scope, caches the access token in
// memory and is discarded with the request; it is not safe to share between
// requests.
package oauth
