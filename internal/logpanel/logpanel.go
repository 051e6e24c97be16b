// Package logpanel keeps the set of open deployment log panels.
//
// A panel is a named output surface for one deployment. Opening a panel for
// a deployment that already has one reveals the existing panel instead of
// creating a second. Log streaming itself is not part of this package.
package logpanel

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"

	"vercelctl/pkg/logging"
)

// ErrEmptyDeploymentID is returned when CreateOrShow is called without an id.
var ErrEmptyDeploymentID = errors.New("deployment id cannot be empty")

// Panel is an open log panel.
type Panel struct {
	ID           string
	DeploymentID string
	OpenedAt     time.Time
	Shown        int
}

// Manager creates and reveals panels, writing their headers to out.
type Manager struct {
	mu     sync.Mutex
	out    io.Writer
	byID   map[string]*Panel
	panels []*Panel
	now    func() time.Time
}

// NewManager creates a panel manager writing to out.
func NewManager(out io.Writer) *Manager {
	return &Manager{
		out:  out,
		byID: make(map[string]*Panel),
		now:  time.Now,
	}
}

// CreateOrShow opens the panel for deploymentID, or reveals it if it is
// already open.
func (m *Manager) CreateOrShow(deploymentID string) (*Panel, error) {
	if deploymentID == "" {
		return nil, ErrEmptyDeploymentID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	panel, exists := m.byID[deploymentID]
	if !exists {
		panel = &Panel{
			ID:           uuid.NewString(),
			DeploymentID: deploymentID,
			OpenedAt:     m.now(),
		}
		m.byID[deploymentID] = panel
		m.panels = append(m.panels, panel)
		logging.Debug("LogPanel", "Created panel %s for deployment %s", panel.ID, deploymentID)
	}
	panel.Shown++

	verb := "Opened"
	if exists {
		verb = "Showing"
	}
	header := text.Colors{text.Bold, text.FgCyan}.Sprintf("==> %s logs for %s", verb, deploymentID)
	if _, err := fmt.Fprintf(m.out, "%s (panel %s)\n", header, panel.ID); err != nil {
		return panel, fmt.Errorf("failed to write panel header: %w", err)
	}
	return panel, nil
}

// Panels returns the open panels in creation order.
func (m *Manager) Panels() []Panel {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Panel, 0, len(m.panels))
	for _, p := range m.panels {
		out = append(out, *p)
	}
	return out
}
