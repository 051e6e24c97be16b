package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0600)
	require.NoError(t, err)
}

func TestLoad_DefaultOnly(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultCallbackPort, cfg.OAuth.CallbackPort)
	assert.Equal(t, DefaultLoginTimeout, cfg.OAuth.LoginTimeout)
	assert.Equal(t, dir, cfg.Credentials.Dir)
}

func TestLoad_FileOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
api:
  baseURL: https://api.example.com
oauth:
  clientID: file-client
  callbackPort: 6001
  loginTimeout: 2m
logLevel: debug
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, DefaultAPITimeout, cfg.API.Timeout, "unset fields keep defaults")
	assert.Equal(t, "file-client", cfg.OAuth.ClientID)
	assert.Equal(t, 6001, cfg.OAuth.CallbackPort)
	assert.Equal(t, 2*time.Minute, cfg.OAuth.LoginTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
oauth:
  clientID: file-client
  callbackPort: 6001
`)

	t.Setenv("CLIENT_ID", "abc")
	t.Setenv("CLIENT_SECRET", "shh")
	t.Setenv("CALLBACK_PORT", "5000")
	t.Setenv("VERCELCTL_CREDENTIALS_DIR", "/tmp/creds")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.OAuth.ClientID)
	assert.Equal(t, "shh", cfg.OAuth.ClientSecret)
	assert.Equal(t, 5000, cfg.OAuth.CallbackPort)
	assert.Equal(t, "/tmp/creds", cfg.Credentials.Dir)
}

func TestLoad_InvalidCallbackPortEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CALLBACK_PORT", "not-a-port")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "oauth: [unclosed")

	_, err := LoadFile(filepath.Join(dir, configFileName))
	require.Error(t, err)

	var fileErr *FileError
	assert.True(t, errors.As(err, &fileErr))
	assert.Contains(t, err.Error(), configFileName)
}

func TestDefaultConfigDir(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()

	osUserHomeDir = func() (string, error) { return "/home/tester", nil }
	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", userConfigDir), dir)

	osUserHomeDir = func() (string, error) { return "", errors.New("no home") }
	_, err = DefaultConfigDir()
	assert.Error(t, err)
}
