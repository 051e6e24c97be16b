package cmd

import (
	"testing"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := GetVersion()
	SetVersion(v)
	t.Cleanup(func() { SetVersion(original) })
}

func TestVersionCommand_WritesToCommandOutput(t *testing.T) {
	withVersion(t, "1.4.0")

	stdout, stderr, err := executeCommandOutput(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "vercelctl version 1.4.0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if stderr != "" {
		t.Errorf("expected nothing on stderr, got %q", stderr)
	}
}

func TestVersionCommand_MatchesVersionFlag(t *testing.T) {
	withVersion(t, "1.4.0")

	fromCommand, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	t.Cleanup(func() {
		if f := rootCmd.Flags().Lookup("version"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	})
	fromFlag, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if fromCommand != fromFlag {
		t.Errorf("version command printed %q, --version printed %q", fromCommand, fromFlag)
	}
}

func TestVersionCommand_RejectsArguments(t *testing.T) {
	withVersion(t, "1.4.0")

	if _, err := executeCommand(t, "version", "extra"); err == nil {
		t.Error("expected an error for unexpected arguments")
	}
}
