package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vercelctl/internal/cli"
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication for vercelctl",
	Long: `Manage the Vercel access token used by vercelctl.

Examples:
  vercelctl auth login     # Log in through the browser
  vercelctl auth status    # Show authentication status
  vercelctl auth logout    # Forget the token and selected team`,
}

// authLogoutCmd represents the auth logout command
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored token and team selection",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

// authStatusCmd represents the auth status command
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Args:  cobra.NoArgs,
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, nil)
	if err != nil {
		return err
	}

	if err := a.manager.LogOut(); err != nil {
		return err
	}

	if !rootFlags.Quiet {
		cli.NewNotifier(cmd.OutOrStdout()).ShowSuccess("Logged out")
	}
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !a.manager.LoggedIn() {
		fmt.Fprintln(out, cli.FormatWarning("Not logged in"))
		fmt.Fprintln(out, "Run 'vercelctl auth login' to authenticate.")
		return nil
	}

	fmt.Fprintln(out, cli.FormatSuccess("Logged in"))
	team := a.manager.SelectedTeam()
	if team == "" {
		team = "personal account"
	}
	fmt.Fprintf(out, "Team:        %s\n", team)
	fmt.Fprintf(out, "API:         %s\n", a.client.Endpoints().BaseURL())
	fmt.Fprintf(out, "Credentials: %s\n", a.store.Path())
	return nil
}
