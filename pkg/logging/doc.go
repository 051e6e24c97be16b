// Package logging provides the structured logging facade used across vercelctl.
//
// It is a thin layer over Go's standard slog package that tags every entry
// with a subsystem name, so diagnostics from the OAuth callback server, the
// API client and the CLI can be told apart and filtered.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("OAuth", "callback server listening on %s", addr)
//	logging.Debug("API", "GET %s", url)
//	logging.Error("OAuth", err, "token exchange failed")
//
// # Levels
//
// Levels can be parsed from configuration with ParseLevel, which accepts
// "debug", "info", "warn" and "error" in any case.
//
// # Secrets
//
// Callers must never pass access tokens or client secrets as arguments.
// Audit entries for credential changes log only the event, never the value.
package logging
