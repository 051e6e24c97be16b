package vercel

import "time"

// Deployment is the subset of a Vercel deployment record vercelctl uses.
type Deployment struct {
	UID     string   `json:"uid"`
	Name    string   `json:"name"`
	URL     string   `json:"url"`
	State   string   `json:"state,omitempty"`
	Target  string   `json:"target,omitempty"`
	Created int64    `json:"created"`
	Creator *Creator `json:"creator,omitempty"`
}

// Creator identifies who triggered a deployment.
type Creator struct {
	UID      string `json:"uid"`
	Username string `json:"username,omitempty"`
}

// CreatedAt converts the millisecond timestamp into a time.Time.
func (d Deployment) CreatedAt() time.Time {
	return time.UnixMilli(d.Created)
}

// Team is the subset of a Vercel team record vercelctl uses.
type Team struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// DeploymentList is the payload of GET /v5/now/deployments.
type DeploymentList struct {
	Deployments []Deployment `json:"deployments"`
}

// TeamList is the payload of GET /v1/teams.
type TeamList struct {
	Teams []Team `json:"teams"`
}

// Credentials identify the OAuth integration during the code exchange.
type Credentials struct {
	ClientID     string
	ClientSecret string
}
