package config

import "time"

const (
	// DefaultAPIBaseURL is the public Vercel API root.
	DefaultAPIBaseURL = "https://api.vercel.com"

	// DefaultCallbackPort is used when neither the file nor CALLBACK_PORT set one.
	DefaultCallbackPort = 5000

	// DefaultLoginTimeout bounds an abandoned browser login.
	DefaultLoginTimeout = 5 * time.Minute

	// DefaultAPITimeout bounds a single API request.
	DefaultAPITimeout = 30 * time.Second
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: DefaultAPIBaseURL,
			Timeout: DefaultAPITimeout,
		},
		OAuth: OAuthConfig{
			CallbackPort: DefaultCallbackPort,
			LoginTimeout: DefaultLoginTimeout,
		},
		LogLevel: "warn",
	}
}
