package vercel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"vercelctl/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
const DefaultHTTPTimeout = 30 * time.Second

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Client performs calls against the Vercel API. It holds no per-user state.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.endpoints = NewEndpoints(baseURL)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		endpoints:  NewEndpoints(DefaultBaseURL),
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the URL builders used by this client.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// ExchangeCode trades an authorization code for an access token. The form
// body carries client_id, client_secret, code and redirect_uri.
func (c *Client) ExchangeCode(ctx context.Context, creds Credentials, code, redirectURI string) (string, error) {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.endpoints.BaseURL() + authorizePath,
			TokenURL:  c.endpoints.TokenExchangeURL(),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if token == nil || token.AccessToken == "" {
		return "", ErrMissingAccessToken
	}
	return token.AccessToken, nil
}

// ListDeployments returns the deployments visible to token, filtered by
// teamID when it is not empty.
func (c *Client) ListDeployments(ctx context.Context, token, teamID string) (*DeploymentList, error) {
	var payload struct {
		Deployments *[]Deployment `json:"deployments"`
	}
	if err := c.getJSON(ctx, c.endpoints.DeploymentsURL(teamID), token, &payload); err != nil {
		return nil, err
	}
	if payload.Deployments == nil {
		return nil, fmt.Errorf("%w: missing deployments", ErrMalformedResponse)
	}

	list := &DeploymentList{Deployments: make([]Deployment, 0, len(*payload.Deployments))}
	for _, d := range *payload.Deployments {
		if d.UID == "" {
			logging.Warn("API", "Skipping deployment without uid (name %q)", d.Name)
			continue
		}
		list.Deployments = append(list.Deployments, d)
	}
	return list, nil
}

// ListTeams returns the teams visible to token.
func (c *Client) ListTeams(ctx context.Context, token string) (*TeamList, error) {
	var payload struct {
		Teams *[]Team `json:"teams"`
	}
	if err := c.getJSON(ctx, c.endpoints.TeamsURL(), token, &payload); err != nil {
		return nil, err
	}
	if payload.Teams == nil {
		return nil, fmt.Errorf("%w: missing teams", ErrMalformedResponse)
	}

	list := &TeamList{Teams: make([]Team, 0, len(*payload.Teams))}
	for _, team := range *payload.Teams {
		if team.ID == "" {
			logging.Warn("API", "Skipping team without id (slug %q)", team.Slug)
			continue
		}
		list.Teams = append(list.Teams, team)
	}
	return list, nil
}

func (c *Client) getJSON(ctx context.Context, url, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	logging.Debug("API", "GET %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
