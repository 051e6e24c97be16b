package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"vercelctl/internal/cli"
)

// updateRepository is the GitHub repository (owner/repo) releases are read
// from. Release builds set it with
// -ldflags "-X vercelctl/cmd.updateRepository=owner/repo".
var updateRepository = ""

var errNoUpdateRepository = errors.New("no update repository configured, pass --repo owner/repo")

// releaseUpdater is the part of *selfupdate.Updater the command uses.
type releaseUpdater interface {
	DetectLatest(ctx context.Context, repository selfupdate.Repository) (*selfupdate.Release, bool, error)
	UpdateTo(ctx context.Context, rel *selfupdate.Release, cmdPath string) error
}

var newUpdater = func() (releaseUpdater, error) {
	return selfupdate.NewUpdater(selfupdate.Config{})
}

// newSelfUpdateCmd creates the Cobra command for the self-update functionality.
func newSelfUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update vercelctl to the latest version",
		Long: `Checks for the latest GitHub release of vercelctl and replaces the
current binary if a newer version is found.

The repository defaults to the one baked in at build time and can be
overridden with --repo.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
	cmd.Flags().String("repo", updateRepository, "GitHub repository (owner/repo) to read releases from")
	return cmd
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	// Development builds do not follow semantic versioning.
	if currentVersion == "" || currentVersion == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}

	repo, err := cmd.Flags().GetString("repo")
	if err != nil {
		return err
	}
	if repo == "" {
		return errNoUpdateRepository
	}
	slug := selfupdate.ParseSlug(repo)
	if _, _, err := slug.GetSlug(); err != nil {
		return fmt.Errorf("invalid repository %q: %w", repo, err)
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintf(out, "Current version: %s\n", currentVersion)

	updater, err := newUpdater()
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	var (
		latest *selfupdate.Release
		found  bool
	)
	err = cli.WithSpinner(ctx, cmd.ErrOrStderr(), rootFlags.Quiet, "Checking for updates...", func(ctx context.Context) error {
		var err error
		latest, found, err = updater.DetectLatest(ctx, slug)
		return err
	})
	if err != nil {
		return fmt.Errorf("error detecting latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest release for %s could not be found", repo)
	}

	if !latest.GreaterThan(currentVersion) {
		fmt.Fprintln(out, "Current version is the latest.")
		return nil
	}

	fmt.Fprintf(out, "Found newer version: %s (published at %s)\n", latest.Version(), latest.PublishedAt)
	fmt.Fprintf(out, "Release notes:\n%s\n", latest.ReleaseNotes)

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	fmt.Fprintf(out, "Updating %s to version %s...\n", exe, latest.Version())
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	cli.NewNotifier(out).ShowSuccess(fmt.Sprintf("Successfully updated to version %s", latest.Version()))
	return nil
}
