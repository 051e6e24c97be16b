package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vercelctl/internal/cli"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates no usable token is stored.
	ExitCodeAuthRequired = 2
	// ExitCodeAuthFailed indicates the browser login failed.
	ExitCodeAuthFailed = 3
)

// rootFlags holds the persistent flags shared by every subcommand.
var rootFlags cli.CommandFlags

// rootCmd represents the base command for the vercelctl application.
var rootCmd = &cobra.Command{
	Use:   "vercelctl",
	Short: "Browse Vercel deployments and teams from the terminal",
	Long: `vercelctl logs in to Vercel through the browser, lists the
deployments and teams of your account, switches the active team and
opens deployment log panels.`,
	// Errors are printed by Execute with the notifier so they are not
	// reported twice.
	SilenceUsage:  true,
	SilenceErrors: true,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		cli.NewNotifier(os.Stderr).ShowError(err)
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var authRequired *cli.AuthRequiredError
	if errors.As(err, &authRequired) {
		return ExitCodeAuthRequired
	}

	var authFailed *cli.AuthFailedError
	if errors.As(err, &authFailed) {
		return ExitCodeAuthFailed
	}

	return ExitCodeError
}

func init() {
	rootCmd.SetVersionTemplate(`{{printf "vercelctl version %s\n" .Version}}`)
	cli.RegisterCommonFlags(rootCmd, &rootFlags)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(deploymentsCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(commandsCmd)
}
