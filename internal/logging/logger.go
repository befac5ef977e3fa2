// Package logging is the structured-logging seam of the client. Components
// take a Logger; the binary wires the slog implementation.
package logging

import "context"

// Logger is a context-aware, structured logger. args are key-value pairs:
//
//	log.Warn(ctx, "session token not persisted", "op", "login", "err", err)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes args.
	With(args ...any) Logger
}
