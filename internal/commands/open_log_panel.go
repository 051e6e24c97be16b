package commands

import (
	"context"
	"fmt"

	"vercelctl/internal/logpanel"
)

// OpenLogPanelID is the identifier of the open log panel command.
const OpenLogPanelID = "vercelctl.openLogPanel"

// PanelOpener creates a log panel for a deployment or reveals the open one.
type PanelOpener interface {
	CreateOrShow(id string) (*logpanel.Panel, error)
}

// OpenLogPanel forwards a deployment id to the log panel collaborator.
type OpenLogPanel struct {
	panels PanelOpener
}

// NewOpenLogPanel creates the open log panel command.
func NewOpenLogPanel(panels PanelOpener) *OpenLogPanel {
	return &OpenLogPanel{panels: panels}
}

// Execute opens the panel for args[0].
func (c *OpenLogPanel) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	_, err := c.panels.CreateOrShow(args[0])
	return err
}

// Usage returns the usage string
func (c *OpenLogPanel) Usage() string {
	return "logs <deployment-id>"
}

// Description returns the command description
func (c *OpenLogPanel) Description() string {
	return "Open the log panel of a deployment"
}

// Aliases returns command aliases
func (c *OpenLogPanel) Aliases() []string {
	return []string{"logs"}
}
