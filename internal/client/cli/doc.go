// Package cli provides the interactive Mesto command-line client.
//
// It wires configuration, the local token database, the auth and card APIs
// and an interactive REPL. On start the stored token is restored and
// validated while profile and cards load; an anonymous user lands on the
// sign-in page.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
