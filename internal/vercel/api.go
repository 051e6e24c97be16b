package vercel

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the public Vercel API root.
const DefaultBaseURL = "https://api.vercel.com"

const (
	authorizePath   = "/v2/oauth/authorize"
	accessTokenPath = "/v2/oauth/access_token"
	deploymentsPath = "/v5/now/deployments"
	teamsPath       = "/v1/teams"
)

// Endpoints builds fully-qualified API URLs.
type Endpoints struct {
	baseURL string
}

// NewEndpoints returns URL builders rooted at baseURL.
// An empty baseURL means DefaultBaseURL.
func NewEndpoints(baseURL string) Endpoints {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Endpoints{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// BaseURL returns the API root without a trailing slash.
func (e Endpoints) BaseURL() string {
	return e.baseURL
}

// AuthorizeURL is the browser-navigated authorize endpoint.
func (e Endpoints) AuthorizeURL(clientID, state string) string {
	return e.build(authorizePath, url.Values{
		"client_id": {clientID},
		"state":     {state},
	})
}

// TokenExchangeURL is the POST target for the code exchange.
func (e Endpoints) TokenExchangeURL() string {
	return e.build(accessTokenPath, nil)
}

// DeploymentsURL lists deployments, filtered by team when teamID is set.
func (e Endpoints) DeploymentsURL(teamID string) string {
	var query url.Values
	if teamID != "" {
		query = url.Values{"teamId": {teamID}}
	}
	return e.build(deploymentsPath, query)
}

// TeamsURL lists the teams the token can access.
func (e Endpoints) TeamsURL() string {
	return e.build(teamsPath, nil)
}

func (e Endpoints) build(path string, query url.Values) string {
	u := e.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
