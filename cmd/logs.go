package cmd

import (
	"github.com/spf13/cobra"

	"vercelctl/internal/cli"
	"vercelctl/internal/commands"
	"vercelctl/internal/logpanel"
)

// logsCmd represents the logs command
var logsCmd = &cobra.Command{
	Use:   "logs <deployment-id>",
	Short: "Open the log panel of a deployment",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogs,
}

// commandsCmd lists the commands that can be invoked by id
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands that can be invoked by id",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cli.RenderCommands(cmd.OutOrStdout(), newCommandRegistry(cmd), rootFlags.TableOptions())
		return nil
	},
}

// newCommandRegistry registers the commands that can be invoked by id.
func newCommandRegistry(cmd *cobra.Command) *commands.Registry {
	registry := commands.NewRegistry()
	registry.Register(commands.OpenLogPanelID, commands.NewOpenLogPanel(logpanel.NewManager(cmd.OutOrStdout())))
	return registry
}

func runLogs(cmd *cobra.Command, args []string) error {
	return newCommandRegistry(cmd).Execute(cmd.Context(), commands.OpenLogPanelID, args)
}
