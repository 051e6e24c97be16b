package manager

import (
	"context"
	"fmt"

	"vercelctl/internal/credentials"
	"vercelctl/internal/vercel"
	"vercelctl/pkg/logging"
)

// Authenticator starts a browser login and reports a stored token through
// the OnAuthenticated function.
type Authenticator interface {
	Start(ctx context.Context) error
	OnAuthenticated(fn func())
}

// API is the subset of the API client the manager queries.
type API interface {
	ListDeployments(ctx context.Context, token, teamID string) (*vercel.DeploymentList, error)
	ListTeams(ctx context.Context, token string) (*vercel.TeamList, error)
}

// Notifier shows user-visible errors.
type Notifier interface {
	ShowError(err error)
}

// Manager coordinates the credential store, the login controller and the API client.
type Manager struct {
	auth     Authenticator
	api      API
	store    credentials.Store
	notifier Notifier

	deploymentsUpdated Hook
	teamsUpdated       Hook
	teamsSelected      Hook
}

// New creates a Manager. A nil notifier discards errors after logging them.
func New(auth Authenticator, api API, store credentials.Store, notifier Notifier) *Manager {
	m := &Manager{
		auth:     auth,
		api:      api,
		store:    store,
		notifier: notifier,
	}
	auth.OnAuthenticated(m.deploymentsUpdated.Fire)
	return m
}

// DeploymentsUpdated fires when the visible deployment list may have changed.
func (m *Manager) DeploymentsUpdated() *Hook { return &m.deploymentsUpdated }

// TeamsUpdated fires when the visible team list may have changed.
func (m *Manager) TeamsUpdated() *Hook { return &m.teamsUpdated }

// TeamsSelected fires after SwitchTeam.
func (m *Manager) TeamsSelected() *Hook { return &m.teamsSelected }

// LogIn starts a browser login. It returns once the callback listener is
// bound; completion is announced through DeploymentsUpdated.
func (m *Manager) LogIn(ctx context.Context) error {
	if err := m.auth.Start(ctx); err != nil {
		m.showError(fmt.Errorf("login failed: %w", err))
		return err
	}
	return nil
}

// LogOut clears the token and team selection. It is safe to call when
// already logged out; the hooks fire either way.
func (m *Manager) LogOut() error {
	var firstErr error
	if err := m.store.SetAuth(""); err != nil {
		firstErr = fmt.Errorf("failed to clear token: %w", err)
	}
	if err := m.store.SetTeam(""); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to clear team: %w", err)
	}

	m.deploymentsUpdated.Fire()
	m.teamsUpdated.Fire()

	if firstErr != nil {
		m.showError(firstErr)
		return firstErr
	}
	logging.Audit(logging.AuditEvent{Action: "logout", Outcome: "success"})
	return nil
}

// LoggedIn reports whether a token is stored.
func (m *Manager) LoggedIn() bool {
	return m.store.GetAuth() != ""
}

// GetDeployments lists deployments in the selected team, or the personal
// scope when no team is selected.
func (m *Manager) GetDeployments(ctx context.Context) (*vercel.DeploymentList, error) {
	token := m.store.GetAuth()
	if token == "" {
		return &vercel.DeploymentList{Deployments: []vercel.Deployment{}}, nil
	}

	list, err := m.api.ListDeployments(ctx, token, m.store.GetTeam())
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	return list, nil
}

// GetTeams lists the teams the stored token can access.
func (m *Manager) GetTeams(ctx context.Context) (*vercel.TeamList, error) {
	token := m.store.GetAuth()
	if token == "" {
		return &vercel.TeamList{Teams: []vercel.Team{}}, nil
	}

	list, err := m.api.ListTeams(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return list, nil
}

// SwitchTeam selects id, or clears the selection when id is already
// selected. TeamsSelected then DeploymentsUpdated fire afterwards.
func (m *Manager) SwitchTeam(id string) error {
	next := id
	if m.store.GetTeam() == id {
		next = ""
	}

	err := m.store.SetTeam(next)

	m.teamsSelected.Fire()
	m.deploymentsUpdated.Fire()

	if err != nil {
		err = fmt.Errorf("failed to switch team: %w", err)
		m.showError(err)
		return err
	}
	logging.Debug("Manager", "Selected team %q", next)
	return nil
}

// SelectedTeam returns the selected team id, "" for the personal scope.
func (m *Manager) SelectedTeam() string {
	return m.store.GetTeam()
}

// WatchCredentials fires DeploymentsUpdated and TeamsUpdated whenever another
// process changes the credentials persisted by store. It blocks until ctx is
// cancelled.
func (m *Manager) WatchCredentials(ctx context.Context, store credentials.Reloader) error {
	watcher, err := credentials.NewWatcher(credentials.WatcherConfig{
		Store: store,
		OnChange: func() {
			logging.Info("Manager", "Credentials changed on disk")
			m.deploymentsUpdated.Fire()
			m.teamsUpdated.Fire()
		},
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch credentials: %w", err)
	}
	defer watcher.Stop()

	<-ctx.Done()
	return nil
}

func (m *Manager) showError(err error) {
	logging.Error("Manager", err, "Operation failed")
	if m.notifier != nil {
		m.notifier.ShowError(err)
	}
}
