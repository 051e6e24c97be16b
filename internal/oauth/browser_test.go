package oauth

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

// mockBrowserLauncher records the command instead of starting it.
func mockBrowserLauncher(launched *[]*exec.Cmd, err error) func(*exec.Cmd) error {
	return func(cmd *exec.Cmd) error {
		*launched = append(*launched, cmd)
		return err
	}
}

func isSupportedPlatform() bool {
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		return true
	}
	return false
}

func TestOpenBrowser_SupportedPlatforms(t *testing.T) {
	var launched []*exec.Cmd
	original := browserLauncher
	browserLauncher = mockBrowserLauncher(&launched, nil)
	defer func() { browserLauncher = original }()

	err := OpenBrowser("https://example.com/authorize?state=abc")

	if !isSupportedPlatform() {
		if err == nil || !strings.Contains(err.Error(), "unsupported platform") {
			t.Errorf("expected unsupported platform error on %s, got %v", runtime.GOOS, err)
		}
		return
	}

	if err != nil {
		t.Fatalf("expected no error on %s, got %v", runtime.GOOS, err)
	}
	if len(launched) != 1 {
		t.Fatalf("expected one launched command, got %d", len(launched))
	}
	args := launched[0].Args
	if args[len(args)-1] != "https://example.com/authorize?state=abc" {
		t.Errorf("expected URL as last argument, got %v", args)
	}
}

func TestOpenBrowser_LauncherError(t *testing.T) {
	if !isSupportedPlatform() {
		t.Skip("platform not supported")
	}

	var launched []*exec.Cmd
	original := browserLauncher
	browserLauncher = mockBrowserLauncher(&launched, errors.New("exec: not found"))
	defer func() { browserLauncher = original }()

	err := OpenBrowser("https://example.com")
	if err == nil || !strings.Contains(err.Error(), "failed to open browser") {
		t.Errorf("expected wrapped launcher error, got %v", err)
	}
}

func TestOpenBrowser_EmptyURL(t *testing.T) {
	err := OpenBrowser("")
	if err == nil {
		t.Fatal("Expected error for empty URL")
	}
	if !strings.Contains(err.Error(), "cannot be empty") {
		t.Errorf("Expected 'cannot be empty' in error, got: %s", err.Error())
	}
}

func TestOpenBrowser_InvalidURLScheme(t *testing.T) {
	var launched []*exec.Cmd
	original := browserLauncher
	browserLauncher = mockBrowserLauncher(&launched, nil)
	defer func() { browserLauncher = original }()

	for _, u := range []string{"file:///etc/passwd", "javascript:alert(1)", "vscode://open"} {
		if err := OpenBrowser(u); err == nil {
			t.Errorf("expected %q to be rejected", u)
		}
	}
	if len(launched) != 0 {
		t.Errorf("no command should be launched for rejected URLs, got %d", len(launched))
	}
}
