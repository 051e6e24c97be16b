package config

import "time"

// Config is the top-level vercelctl configuration.
type Config struct {
	API         APIConfig         `yaml:"api"`
	OAuth       OAuthConfig       `yaml:"oauth"`
	Credentials CredentialsConfig `yaml:"credentials"`
	LogLevel    string            `yaml:"logLevel"`
}

// APIConfig configures the remote Vercel API.
type APIConfig struct {
	// BaseURL is the API root, e.g. https://api.vercel.com.
	BaseURL string `yaml:"baseURL"`

	// Timeout bounds each HTTP request to the API.
	Timeout time.Duration `yaml:"timeout"`
}

// OAuthConfig configures the authorization-code login.
type OAuthConfig struct {
	ClientID     string `yaml:"clientID"`
	ClientSecret string `yaml:"clientSecret"`

	// CallbackPort is the loopback port the callback listener binds to. The
	// redirect URI registered with the integration must use the same port.
	CallbackPort int `yaml:"callbackPort"`

	// LoginTimeout ends a login session the user never completes.
	LoginTimeout time.Duration `yaml:"loginTimeout"`
}

// CredentialsConfig configures where the token and selected team are kept.
type CredentialsConfig struct {
	// Dir holds credentials.json. Defaults to ~/.config/vercelctl.
	Dir string `yaml:"dir"`
}
