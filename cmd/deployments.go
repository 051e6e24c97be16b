package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/singleflight"

	"vercelctl/internal/cli"
	"vercelctl/internal/manager"
)

var deploymentsWatch bool

// deploymentsCmd represents the deployments command group
var deploymentsCmd = &cobra.Command{
	Use:     "deployments",
	Aliases: []string{"deployment", "dpl"},
	Short:   "Work with deployments",
}

// deploymentsListCmd represents the deployments list command
var deploymentsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List deployments of the selected team",
	Long: `List deployments of the selected team, or of the personal account
when no team is selected.

With --watch the list is redrawn whenever the login or the selected team
changes, including changes made by another vercelctl process.`,
	Args: cobra.NoArgs,
	RunE: runDeploymentsList,
}

func init() {
	deploymentsListCmd.Flags().BoolVarP(&deploymentsWatch, "watch", "w", false, "Redraw when the login or selected team changes")
	deploymentsCmd.AddCommand(deploymentsListCmd)
}

func runDeploymentsList(cmd *cobra.Command, args []string) error {
	var notifier manager.Notifier
	if deploymentsWatch {
		notifier = cli.NewNotifier(cmd.ErrOrStderr())
	}

	a, err := newApp(cmd, notifier)
	if err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if err := renderDeployments(ctx, out, a); err != nil {
		return err
	}
	if !deploymentsWatch {
		return nil
	}
	return watchDeployments(ctx, out, a, notifier)
}

func renderDeployments(ctx context.Context, out io.Writer, a *app) error {
	list, err := a.manager.GetDeployments(ctx)
	if err != nil {
		return cli.WrapAPIError(err, a.client.Endpoints().BaseURL())
	}
	if len(list.Deployments) == 0 {
		if a.manager.LoggedIn() {
			fmt.Fprintln(out, cli.FormatWarning("No deployments found"))
		} else {
			fmt.Fprintln(out, cli.FormatWarning("Not logged in"))
		}
		return nil
	}
	cli.RenderDeployments(out, list.Deployments, rootFlags.TableOptions())
	return nil
}

// watchDeployments redraws on every deployments-updated notification until
// ctx is cancelled. Notifications that arrive while a redraw is running
// share its result.
func watchDeployments(ctx context.Context, out io.Writer, a *app, notifier manager.Notifier) error {
	var (
		mu     sync.Mutex
		redraw singleflight.Group
	)
	a.manager.DeploymentsUpdated().Replace(func() {
		_, err, _ := redraw.Do("deployments", func() (interface{}, error) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintln(out)
			return nil, renderDeployments(ctx, out, a)
		})
		if err != nil {
			notifier.ShowError(err)
		}
	})
	a.manager.TeamsUpdated().Replace(func() {
		mu.Lock()
		defer mu.Unlock()
		if team := a.manager.SelectedTeam(); team != "" {
			fmt.Fprintf(out, "Team: %s\n", team)
		}
	})

	return a.manager.WatchCredentials(ctx, a.store)
}
