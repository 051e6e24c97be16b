// Package config loads vercelctl configuration.
//
// Configuration is layered:
//
//  1. built-in defaults (GetDefaultConfig)
//  2. the YAML file at ~/.config/vercelctl/config.yaml, if present
//  3. environment variables (CLIENT_ID, CLIENT_SECRET, CALLBACK_PORT, ...)
//
// Later layers override earlier ones field by field. The resulting Config is
// passed explicitly to the components that need it; nothing reads the process
// environment after Load returns.
package config
