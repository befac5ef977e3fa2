// Package common contains shared constants and sentinel errors used across
// mesto client components.
package common

const (
	// TokenStorageKey is the single key the session token is persisted under.
	TokenStorageKey = "jwt"

	// AccessTokenHeaderName is the gRPC metadata key used to carry the
	// access token on outbound auth requests.
	AccessTokenHeaderName = "access_token"

	// AuthorizationHeaderName carries "Bearer <token>" on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName correlates client logs with server logs.
	RequestIDHeaderName = "X-Request-Id"
)
