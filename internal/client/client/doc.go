// Package client contains the transports the mesto client talks through and
// the local database bootstrap.
//
// # Overview
//
//  1. AuthAPI and CardAPI describe the remote service. HTTPClient implements
//     both over JSON/HTTP; GRPCAuthClient is an alternative AuthAPI over gRPC
//     using protobuf well-known types.
//  2. Outgoing HTTP requests are throttled, tagged with an X-Request-Id and
//     logged at debug level.
//  3. InitDatabase and RunMigrations open the SQLite file that keeps the
//     session token and apply the embedded goose migrations.
//
// # Error Handling
//
// Auth calls fail with *AuthError, profile and card calls with *APIError.
// Both unwrap to one of the sentinels ErrUnauthorized, ErrBadRequest or
// ErrUnavailable, so callers can use errors.Is.
package client
