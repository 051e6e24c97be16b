package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"vercelctl/pkg/logging"
)

const (
	userConfigDir  = ".config/vercelctl"
	configFileName = "config.yaml"
)

// osUserHomeDir is replaced in tests.
var osUserHomeDir = os.UserHomeDir

// environment holds the raw values read from the process environment.
// Unset variables leave the corresponding field at its zero value.
type environment struct {
	ClientID       string        `env:"CLIENT_ID"`
	ClientSecret   string        `env:"CLIENT_SECRET"`
	CallbackPort   int           `env:"CALLBACK_PORT"`
	APIBaseURL     string        `env:"VERCEL_API_URL"`
	LoginTimeout   time.Duration `env:"VERCELCTL_LOGIN_TIMEOUT"`
	CredentialsDir string        `env:"VERCELCTL_CREDENTIALS_DIR"`
	LogLevel       string        `env:"VERCELCTL_LOG_LEVEL"`
}

// DefaultConfigDir returns ~/.config/vercelctl.
func DefaultConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// Load builds the configuration from defaults, the YAML file in configDir
// and the environment. An empty configDir means DefaultConfigDir.
func Load(configDir string) (Config, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return Config{}, err
		}
		configDir = dir
	}

	cfg, err := LoadFile(filepath.Join(configDir, configFileName))
	if err != nil {
		return Config{}, err
	}

	if err := applyEnvironment(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Credentials.Dir == "" {
		cfg.Credentials.Dir = configDir
	}

	return cfg, nil
}

// LoadFile reads a YAML configuration file on top of the defaults.
// A missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := GetDefaultConfig()

	// #nosec G304 -- path is the user's own config location
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No config file at %s, using defaults", path)
			return cfg, nil
		}
		return Config{}, &FileError{Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &FileError{Path: path, Err: err}
	}

	logging.Debug("Config", "Loaded configuration from %s", path)
	return cfg, nil
}

func applyEnvironment(cfg *Config) error {
	var e environment
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.ClientID != "" {
		cfg.OAuth.ClientID = e.ClientID
	}
	if e.ClientSecret != "" {
		cfg.OAuth.ClientSecret = e.ClientSecret
	}
	if e.CallbackPort != 0 {
		cfg.OAuth.CallbackPort = e.CallbackPort
	}
	if e.LoginTimeout != 0 {
		cfg.OAuth.LoginTimeout = e.LoginTimeout
	}
	if e.APIBaseURL != "" {
		cfg.API.BaseURL = e.APIBaseURL
	}
	if e.CredentialsDir != "" {
		cfg.Credentials.Dir = e.CredentialsDir
	}
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}
	return nil
}
