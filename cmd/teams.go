package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vercelctl/internal/cli"
)

// teamsCmd represents the teams command group
var teamsCmd = &cobra.Command{
	Use:     "teams",
	Aliases: []string{"team"},
	Short:   "List and select teams",
}

// teamsListCmd represents the teams list command
var teamsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the teams of the logged in account",
	Args:    cobra.NoArgs,
	RunE:    runTeamsList,
}

// teamsSwitchCmd represents the teams switch command
var teamsSwitchCmd = &cobra.Command{
	Use:   "switch <team-id>",
	Short: "Select a team, or go back to the personal account",
	Long: `Select the team whose deployments are listed.

Switching to the team that is already selected clears the selection and
goes back to the personal account.`,
	Args: cobra.ExactArgs(1),
	RunE: runTeamsSwitch,
}

func init() {
	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsSwitchCmd)
}

func runTeamsList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, nil)
	if err != nil {
		return err
	}
	if err := a.requireLogin(); err != nil {
		return err
	}

	list, err := a.manager.GetTeams(cmd.Context())
	if err != nil {
		return cli.WrapAPIError(err, a.client.Endpoints().BaseURL())
	}

	out := cmd.OutOrStdout()
	if len(list.Teams) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("No teams found"))
		return nil
	}
	cli.RenderTeams(out, list.Teams, a.manager.SelectedTeam(), rootFlags.TableOptions())
	return nil
}

func runTeamsSwitch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, nil)
	if err != nil {
		return err
	}

	notifier := cli.NewNotifier(cmd.OutOrStdout())
	a.manager.TeamsSelected().Replace(func() {
		if rootFlags.Quiet {
			return
		}
		if team := a.manager.SelectedTeam(); team != "" {
			notifier.ShowSuccess(fmt.Sprintf("Selected team %s", team))
		} else {
			notifier.ShowSuccess("Switched to the personal account")
		}
	})

	return a.manager.SwitchTeam(args[0])
}
