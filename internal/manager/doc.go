// Package manager exposes the account-level operations of vercelctl: logging
// in and out, listing deployments and teams, and selecting the active team.
//
// State changes are announced through three single-subscriber hooks. A UI
// surface replaces the handler of each hook with its own function; the last
// replacement wins and the default handler does nothing.
//
//	m := manager.New(controller, client, store, notifier)
//	m.DeploymentsUpdated().Replace(func() { refresh(m) })
//	m.SwitchTeam("team_123")
//
// Queries short-circuit to empty results without contacting the API when no
// token is stored.
package manager
