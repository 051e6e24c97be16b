package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"vercelctl/internal/cli"
	"vercelctl/internal/credentials"
	"vercelctl/internal/oauth"
)

// fakeAPI serves the Vercel endpoints the commands call.
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		_ = r.ParseForm()
		if r.PostForm.Get("code") != "xyz" {
			http.Error(w, `{"error":{"code":"bad_code","message":"invalid code"}}`, http.StatusBadRequest)
			return
		}
		writeJSON(w, map[string]string{"access_token": "tok123"})
	})
	mux.HandleFunc("/v5/now/deployments", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		if r.Header.Get("Authorization") == "Bearer revoked" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"code": "forbidden", "message": "token revoked"}})
			return
		}
		writeJSON(w, map[string]any{"deployments": []map[string]any{
			{"uid": "dpl_1", "name": "web", "url": "web.vercel.app", "state": "READY", "target": "production"},
		}})
	})
	mux.HandleFunc("/v1/teams", func(w http.ResponseWriter, r *http.Request) {
		api.record(r)
		writeJSON(w, map[string]any{"teams": []map[string]any{
			{"id": "t1", "slug": "acme", "name": "Acme"},
			{"id": "t2", "slug": "globex", "name": "Globex"},
		}})
	})
	api.Server = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	return api
}

func (f *fakeAPI) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r)
}

func (f *fakeAPI) Requests() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*http.Request(nil), f.requests...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// testEnv points the configuration at a temp dir and the fake API, and
// returns the config dir.
func testEnv(t *testing.T, api *fakeAPI) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VERCEL_API_URL", api.URL)
	t.Setenv("CLIENT_ID", "abc")
	t.Setenv("CLIENT_SECRET", "secret")
	t.Setenv("VERCELCTL_CREDENTIALS_DIR", "")
	t.Setenv("VERCELCTL_LOG_LEVEL", "")
	return dir
}

func seedCredentials(t *testing.T, dir, token, team string) {
	t.Helper()
	store, err := credentials.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.SetAuth(token); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}
	if err := store.SetTeam(team); err != nil {
		t.Fatalf("SetTeam: %v", err)
	}
}

func readCredentials(t *testing.T, dir string) (string, string) {
	t.Helper()
	store, err := credentials.NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store.GetAuth(), store.GetTeam()
}

// executeCommand runs the root command with args and returns stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := executeCommandOutput(t, args...)
	return stdout, err
}

// executeCommandOutput runs the root command with args and returns what it
// wrote to stdout and stderr.
func executeCommandOutput(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	rootFlags = cli.CommandFlags{}
	deploymentsWatch = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestDeploymentsList(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)
	seedCredentials(t, dir, "tok", "t1")

	out, err := executeCommand(t, "deployments", "list", "--plain", "--config-dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "web") || !strings.Contains(out, "READY") {
		t.Errorf("expected deployment row, got %q", out)
	}

	requests := api.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(requests))
	}
	if got := requests[0].URL.RawQuery; got != "teamId=t1" {
		t.Errorf("expected teamId=t1 query, got %q", got)
	}
	if got := requests[0].Header.Get("Authorization"); got != "Bearer tok" {
		t.Errorf("expected bearer token header, got %q", got)
	}
}

func TestDeploymentsList_NotLoggedIn(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)

	_, err := executeCommand(t, "deployments", "list", "--config-dir", dir)
	var authErr *cli.AuthRequiredError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthRequiredError, got %v", err)
	}
	if getExitCode(err) != ExitCodeAuthRequired {
		t.Errorf("expected exit code %d, got %d", ExitCodeAuthRequired, getExitCode(err))
	}
	if len(api.Requests()) != 0 {
		t.Errorf("expected no API calls without a token, got %d", len(api.Requests()))
	}
}

func TestDeploymentsList_RevokedToken(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)
	seedCredentials(t, dir, "revoked", "")

	_, err := executeCommand(t, "deployments", "list", "--config-dir", dir)
	if getExitCode(err) != ExitCodeAuthRequired {
		t.Fatalf("expected exit code %d, got %d (%v)", ExitCodeAuthRequired, getExitCode(err), err)
	}
	if !strings.Contains(err.Error(), "token revoked") {
		t.Errorf("expected API message in error, got %q", err.Error())
	}
}

func TestTeamsList(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)
	seedCredentials(t, dir, "tok", "t2")

	out, err := executeCommand(t, "teams", "list", "--plain", "--config-dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "globex") && !strings.Contains(line, "*") {
			t.Errorf("expected selected team to be marked: %q", line)
		}
		if strings.Contains(line, "acme") && strings.Contains(line, "*") {
			t.Errorf("expected unselected team to be unmarked: %q", line)
		}
	}
}

func TestTeamsSwitch_Toggles(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)
	seedCredentials(t, dir, "tok", "")

	out, err := executeCommand(t, "teams", "switch", "t1", "--config-dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Selected team t1") {
		t.Errorf("unexpected output %q", out)
	}
	if _, team := readCredentials(t, dir); team != "t1" {
		t.Errorf("expected team t1, got %q", team)
	}

	out, err = executeCommand(t, "teams", "switch", "t1", "--config-dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "personal account") {
		t.Errorf("unexpected output %q", out)
	}
	if token, team := readCredentials(t, dir); team != "" || token != "tok" {
		t.Errorf("expected token kept and team cleared, got %q %q", token, team)
	}
}

func TestAuthLogout(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)

	for _, seeded := range []bool{true, false} {
		if seeded {
			seedCredentials(t, dir, "tok", "t1")
		}
		out, err := executeCommand(t, "auth", "logout", "--config-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Logged out") {
			t.Errorf("unexpected output %q", out)
		}
		if token, team := readCredentials(t, dir); token != "" || team != "" {
			t.Errorf("expected credentials cleared, got %q %q", token, team)
		}
	}
}

func TestAuthStatus(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)

	out, err := executeCommand(t, "auth", "status", "--config-dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Not logged in") {
		t.Errorf("unexpected output %q", out)
	}

	seedCredentials(t, dir, "tok", "t1")
	out, err = executeCommand(t, "auth", "status", "--config-dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Logged in") || !strings.Contains(out, "t1") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestAuthLogin(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)

	var mu sync.Mutex
	var port int
	var callbackErr error
	done := make(chan struct{})

	original := loginOptions
	defer func() { loginOptions = original }()
	loginOptions = []oauth.ControllerOption{
		oauth.WithListenFunc(func(network, address string) (net.Listener, error) {
			if !strings.HasPrefix(address, "127.0.0.1:") {
				return net.Listen(network, address)
			}
			l, err := net.Listen(network, "127.0.0.1:0")
			if err == nil {
				mu.Lock()
				port = l.Addr().(*net.TCPAddr).Port
				mu.Unlock()
			}
			return l, err
		}),
		oauth.WithBrowserOpener(func(authURL string) error {
			u, err := url.Parse(authURL)
			if err != nil {
				return err
			}
			mu.Lock()
			callback := fmt.Sprintf("http://127.0.0.1:%d%s?code=xyz&state=%s", port, oauth.CallbackPath, url.QueryEscape(u.Query().Get("state")))
			mu.Unlock()

			// The browser follows the redirect after the user approves.
			go func() {
				defer close(done)
				resp, err := http.Get(callback)
				if err == nil {
					resp.Body.Close()
				}
				mu.Lock()
				callbackErr = err
				mu.Unlock()
			}()
			return nil
		}),
	}

	out, err := executeCommand(t, "auth", "login", "--config-dir", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-done

	mu.Lock()
	defer mu.Unlock()
	if callbackErr != nil {
		t.Fatalf("callback request failed: %v", callbackErr)
	}
	if !strings.Contains(out, "Logged in") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "1 deployments visible") {
		t.Errorf("expected deployment summary, got %q", out)
	}
	if !strings.Contains(out, api.URL+"/v2/oauth/authorize?client_id=abc&state=") {
		t.Errorf("expected authorize URL in output, got %q", out)
	}
	if token, _ := readCredentials(t, dir); token != "tok123" {
		t.Errorf("expected stored token tok123, got %q", token)
	}
}

func TestAuthLogin_MissingClientID(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)
	t.Setenv("CLIENT_ID", "")

	_, err := executeCommand(t, "auth", "login", "--config-dir", dir)
	if err == nil || !strings.Contains(err.Error(), "oauth.clientID") {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(api.Requests()) != 0 {
		t.Errorf("expected no API calls, got %d", len(api.Requests()))
	}
}

func TestAuthLogin_PortInUse(t *testing.T) {
	api := newFakeAPI(t)
	dir := testEnv(t, api)

	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer occupied.Close()
	t.Setenv("CALLBACK_PORT", fmt.Sprint(occupied.Addr().(*net.TCPAddr).Port))

	opened := false
	original := loginOptions
	defer func() { loginOptions = original }()
	loginOptions = []oauth.ControllerOption{
		oauth.WithBrowserOpener(func(string) error { opened = true; return nil }),
	}

	_, err = executeCommand(t, "auth", "login", "--config-dir", dir)
	if getExitCode(err) != ExitCodeAuthFailed {
		t.Fatalf("expected exit code %d, got %d (%v)", ExitCodeAuthFailed, getExitCode(err), err)
	}
	var listenErr *oauth.ListenError
	if !errors.As(err, &listenErr) {
		t.Errorf("expected ListenError, got %v", err)
	}
	if opened {
		t.Error("browser must not open when the listener cannot bind")
	}
}

func TestLogs(t *testing.T) {
	out, err := executeCommand(t, "logs", "dpl_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "logs for dpl_1") {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := executeCommand(t, "logs"); err == nil {
		t.Error("expected error without a deployment id")
	}
}

func TestCommandsList(t *testing.T) {
	out, err := executeCommand(t, "commands", "--plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"vercelctl.openLogPanel", "logs <deployment-id>", "Open the log panel of a deployment"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output %q", want, out)
		}
	}
}
