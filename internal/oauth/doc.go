// Package oauth implements the browser-based OAuth2 authorization-code login
// for vercelctl.
//
// # Flow
//
// A Controller owns at most one login session at a time:
//
//	Idle → ListenerStarting → Listening → AwaitingCallback → ExchangingToken → Completed | Failed
//
// Start binds a loopback CallbackServer on the configured port, generates a
// one-time state nonce and opens the user's browser at the Vercel authorize
// URL. The first request to /oauth/callback is validated (code and state are
// present, state matches the nonce) before the code is exchanged for an
// access token, which is then written to the credential store.
//
// The listener is closed exactly once per session whatever the outcome:
// success, a malformed or forged callback, a failed exchange, a timeout, or
// cancellation of the context passed to Start.
//
// # Usage
//
//	ctrl := oauth.NewController(oauth.Config{
//	    ClientID:     cfg.OAuth.ClientID,
//	    ClientSecret: cfg.OAuth.ClientSecret,
//	    CallbackPort: cfg.OAuth.CallbackPort,
//	}, apiClient.Endpoints(), apiClient, store)
//
//	if err := ctrl.Start(ctx); err != nil {
//	    return err
//	}
//	err := ctrl.Wait(ctx)
package oauth
