package cli

import (
	"github.com/spf13/cobra"
)

// CommandFlags holds the flag values shared by commands that talk to the API.
type CommandFlags struct {
	// ConfigDir overrides the configuration directory
	ConfigDir string
	// Plain renders tables without borders or colours
	Plain bool
	// NoHeaders suppresses the header row in table output
	NoHeaders bool
	// Quiet suppresses progress indicators and non-essential output
	Quiet bool
	// Debug enables debug logging
	Debug bool
}

// RegisterCommonFlags registers the shared flags as persistent flags of cmd.
//
// The registered flags are:
//   - --config-dir: Configuration directory (default ~/.config/vercelctl)
//   - --plain: Plain table output
//   - --no-headers: Suppress header row in table output
//   - --quiet/-q: Suppress non-essential output
//   - --debug: Enable debug logging
func RegisterCommonFlags(cmd *cobra.Command, flags *CommandFlags) {
	cmd.PersistentFlags().StringVar(&flags.ConfigDir, "config-dir", "", "Configuration directory (default ~/.config/vercelctl)")
	cmd.PersistentFlags().BoolVar(&flags.Plain, "plain", false, "Plain table output without borders or colours")
	cmd.PersistentFlags().BoolVar(&flags.NoHeaders, "no-headers", false, "Suppress header row in table output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
}

// TableOptions returns the table options selected by the flags.
func (f *CommandFlags) TableOptions() TableOptions {
	return TableOptions{Plain: f.Plain, NoHeaders: f.NoHeaders}
}
