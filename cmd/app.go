package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"vercelctl/internal/cli"
	"vercelctl/internal/config"
	"vercelctl/internal/credentials"
	"vercelctl/internal/manager"
	"vercelctl/internal/oauth"
	"vercelctl/internal/vercel"
	"vercelctl/pkg/logging"
)

// loginOptions are applied to every login controller. Tests use them to
// replace the browser.
var loginOptions []oauth.ControllerOption

// app holds the components a command works with.
type app struct {
	cfg     config.Config
	store   *credentials.FileStore
	client  *vercel.Client
	login   *oauth.Controller
	manager *manager.Manager
}

// newApp loads the configuration and wires the components. notifier
// receives errors the manager cannot return to the caller; nil leaves
// them to the log.
func newApp(cmd *cobra.Command, notifier manager.Notifier) (*app, error) {
	cfg, err := config.Load(rootFlags.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if rootFlags.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := credentials.NewFileStore(cfg.Credentials.Dir)
	if err != nil {
		return nil, err
	}

	client := vercel.NewClient(
		vercel.WithBaseURL(cfg.API.BaseURL),
		vercel.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
	)

	login := oauth.NewController(oauth.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		CallbackPort: cfg.OAuth.CallbackPort,
		LoginTimeout: cfg.OAuth.LoginTimeout,
	}, client.Endpoints(), client, store, loginOptions...)

	return &app{
		cfg:     cfg,
		store:   store,
		client:  client,
		login:   login,
		manager: manager.New(login, client, store, notifier),
	}, nil
}

// requireLogin returns AuthRequiredError when no token is stored.
func (a *app) requireLogin() error {
	if !a.manager.LoggedIn() {
		return &cli.AuthRequiredError{}
	}
	return nil
}
