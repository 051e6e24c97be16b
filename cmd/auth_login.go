package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"vercelctl/internal/cli"
)

// authLoginCmd represents the auth login command
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to Vercel through the browser",
	Long: `Log in to Vercel using the OAuth authorization-code flow.

A callback listener is started on 127.0.0.1:<CALLBACK_PORT> (and ::1 when the host
has an IPv6 loopback) and the browser opens the Vercel authorize page. The integration's redirect URI
must be http://localhost:<CALLBACK_PORT>/oauth/callback.

CLIENT_ID and CLIENT_SECRET (or oauth.clientID and oauth.clientSecret in
the config file) identify the integration.`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, nil)
	if err != nil {
		return err
	}
	if err := a.cfg.ValidateLogin(); err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	stored := make(chan struct{}, 1)
	a.manager.DeploymentsUpdated().Replace(func() {
		select {
		case stored <- struct{}{}:
		default:
		}
	})

	if err := a.manager.LogIn(ctx); err != nil {
		return &cli.AuthFailedError{Reason: err}
	}

	if !rootFlags.Quiet {
		fmt.Fprintln(out, "Opening the browser to log in. If it does not open, visit:")
		fmt.Fprintf(out, "  %s\n", a.login.AuthURL())
	}

	err = cli.WithSpinner(ctx, cmd.ErrOrStderr(), rootFlags.Quiet, "Waiting for browser login...", a.login.Wait)
	if err != nil {
		return &cli.AuthFailedError{Reason: err}
	}

	select {
	case <-stored:
	case <-ctx.Done():
		return ctx.Err()
	}

	if !rootFlags.Quiet {
		cli.NewNotifier(out).ShowSuccess("Logged in")
	}
	return summarizeDeployments(ctx, cmd, a)
}

// summarizeDeployments prints how many deployments the new token can see.
func summarizeDeployments(ctx context.Context, cmd *cobra.Command, a *app) error {
	if rootFlags.Quiet {
		return nil
	}
	list, err := a.manager.GetDeployments(ctx)
	if err != nil {
		return cli.WrapAPIError(err, a.client.Endpoints().BaseURL())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d deployments visible. Run 'vercelctl deployments list' to see them.\n", len(list.Deployments))
	return nil
}
