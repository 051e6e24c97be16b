// Package cli provides the terminal-facing helpers shared by vercelctl commands.
//
// # Errors
//
// AuthRequiredError and AuthFailedError carry actionable guidance and are
// mapped to exit codes by the root command. ConnectionError classifies
// transport failures (TLS, DNS, timeout, refused) when talking to the API.
//
// # Output
//
// Deployments and teams are rendered as go-pretty tables. The plain style
// drops box drawing for piping into grep, awk and cut; the default rounded
// style is meant for interactive terminals.
//
// Notifier prints user-visible errors in colour and WithSpinner shows
// progress while a blocking operation runs. Both honour quiet mode.
package cli
