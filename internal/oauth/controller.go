package oauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
	"time"

	"vercelctl/internal/vercel"
	"vercelctl/pkg/logging"
)

// DefaultLoginTimeout ends a session whose browser login is never completed.
const DefaultLoginTimeout = 5 * time.Minute

// SessionState is the state of the login state machine.
type SessionState int

const (
	StateIdle SessionState = iota
	StateListenerStarting
	StateListening
	StateAwaitingCallback
	StateExchangingToken
	StateCompleted
	StateFailed
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListenerStarting:
		return "listener_starting"
	case StateListening:
		return "listening"
	case StateAwaitingCallback:
		return "awaiting_callback"
	case StateExchangingToken:
		return "exchanging_token"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InProgress reports whether a session in this state holds the listener.
func (s SessionState) InProgress() bool {
	switch s {
	case StateListenerStarting, StateListening, StateAwaitingCallback, StateExchangingToken:
		return true
	default:
		return false
	}
}

// Config holds the OAuth integration settings.
type Config struct {
	ClientID     string
	ClientSecret string

	// CallbackPort is the loopback port; the redirect URI is
	// http://localhost:<port>/oauth/callback.
	CallbackPort int

	// LoginTimeout defaults to DefaultLoginTimeout when zero.
	LoginTimeout time.Duration
}

// Exchanger trades an authorization code for an access token.
type Exchanger interface {
	ExchangeCode(ctx context.Context, creds vercel.Credentials, code, redirectURI string) (string, error)
}

// TokenWriter persists the access token.
type TokenWriter interface {
	SetAuth(token string) error
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithBrowserOpener replaces OpenBrowser.
func WithBrowserOpener(open func(url string) error) ControllerOption {
	return func(c *Controller) {
		c.openBrowser = open
	}
}

// WithListenFunc replaces net.Listen for the callback server.
func WithListenFunc(listen ListenFunc) ControllerOption {
	return func(c *Controller) {
		c.listen = listen
	}
}

// Controller runs the authorization-code login. It allows one live session
// at a time and is safe for concurrent use.
type Controller struct {
	cfg         Config
	endpoints   vercel.Endpoints
	exchanger   Exchanger
	store       TokenWriter
	openBrowser func(string) error
	listen      ListenFunc

	mu              sync.Mutex
	state           SessionState
	session         *session
	onAuthenticated func()
}

type session struct {
	nonce       string
	server      *CallbackServer
	redirectURI string
	authURL     string
	cancel      context.CancelFunc

	once sync.Once
	done chan struct{}
	err  error
}

// NewController creates a login controller.
func NewController(cfg Config, endpoints vercel.Endpoints, exchanger Exchanger, store TokenWriter, opts ...ControllerOption) *Controller {
	if cfg.LoginTimeout <= 0 {
		cfg.LoginTimeout = DefaultLoginTimeout
	}
	c := &Controller{
		cfg:         cfg,
		endpoints:   endpoints,
		exchanger:   exchanger,
		store:       store,
		openBrowser: OpenBrowser,
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnAuthenticated registers the function called after a token is stored.
// A later call replaces the earlier function.
func (c *Controller) OnAuthenticated(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthenticated = fn
}

// State returns the current session state.
func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AuthURL returns the authorize URL of the current or last session.
func (c *Controller) AuthURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.authURL
}

// RedirectURI returns the redirect URI of the current or last session.
func (c *Controller) RedirectURI() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ""
	}
	return c.session.redirectURI
}

// Start begins a login session: it binds the callback listener and opens the
// browser at the authorize URL. It returns once the listener is bound; the
// outcome is reported by Wait and, on success, the OnAuthenticated function.
//
// The session ends when the callback is handled, LoginTimeout elapses or ctx
// is cancelled.
func (c *Controller) Start(ctx context.Context) error {
	if c.cfg.ClientID == "" {
		return ErrMissingClientID
	}

	c.mu.Lock()
	if c.state.InProgress() {
		c.mu.Unlock()
		return ErrLoginInProgress
	}
	c.state = StateListenerStarting
	c.mu.Unlock()

	nonce, err := GenerateState()
	if err != nil {
		c.setState(StateFailed)
		return err
	}

	sessCtx, cancel := context.WithTimeout(ctx, c.cfg.LoginTimeout)
	sess := &session{
		nonce:  nonce,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	sess.server = NewCallbackServer(c.cfg.CallbackPort, func(reqCtx context.Context, code, state string) (Page, error) {
		return c.handleCallback(reqCtx, sess, code, state)
	}, c.listen)

	port, err := sess.server.Start(sessCtx)
	if err != nil {
		cancel()
		c.setState(StateFailed)
		logging.Error("OAuth", err, "Could not start login")
		return err
	}

	sess.redirectURI = fmt.Sprintf("http://localhost:%d%s", port, CallbackPath)
	sess.authURL = c.endpoints.AuthorizeURL(c.cfg.ClientID, nonce)

	c.mu.Lock()
	c.session = sess
	c.state = StateListening
	c.mu.Unlock()

	go c.watch(sessCtx, sess)

	if err := c.openBrowser(sess.authURL); err != nil {
		logging.Warn("OAuth", "Could not open browser, visit the authorize URL manually: %v", err)
	}
	c.advance(sess, StateListening, StateAwaitingCallback)

	logging.Info("OAuth", "Waiting for browser login on %s", sess.redirectURI)
	return nil
}

// Wait blocks until the current session ends and returns its outcome.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	sess := c.session
	c.mu.Unlock()

	if sess == nil {
		return ErrNoLoginSession
	}

	select {
	case <-sess.done:
		return sess.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// watch ends the session on the first of: callback outcome, timeout, cancellation.
func (c *Controller) watch(ctx context.Context, sess *session) {
	var err error
	select {
	case err = <-sess.server.Result():
	case <-ctx.Done():
		err = ctx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrLoginTimeout
		}
	}
	c.finish(sess, err)
}

func (c *Controller) handleCallback(ctx context.Context, sess *session, code, state string) (Page, error) {
	if code == "" || state == "" {
		logging.Warn("OAuth", "Callback missing code or state")
		return PageMalformed, ErrMissingCallbackParams
	}

	if subtle.ConstantTimeCompare([]byte(state), []byte(sess.nonce)) != 1 {
		logging.Warn("OAuth", "Callback state does not match the login session")
		return PageInvalidAuthentication, ErrStateMismatch
	}

	c.advanceFrom(sess, StateExchangingToken)

	token, err := c.exchanger.ExchangeCode(ctx, vercel.Credentials{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
	}, code, sess.redirectURI)
	if err == nil && token == "" {
		err = vercel.ErrMissingAccessToken
	}
	if err != nil {
		logging.Error("OAuth", err, "Token exchange failed")
		return PageExchangeFailed, &ExchangeError{Err: err}
	}

	if err := c.store.SetAuth(token); err != nil {
		logging.Error("OAuth", err, "Failed to store access token")
		return PageExchangeFailed, &ExchangeError{Err: err}
	}

	c.mu.Lock()
	notify := c.onAuthenticated
	c.mu.Unlock()
	if notify != nil {
		notify()
	}

	return PageSuccess, nil
}

// finish closes the listener and records the outcome. Only the first call
// for a session has any effect.
func (c *Controller) finish(sess *session, err error) {
	sess.once.Do(func() {
		sess.server.Close()
		sess.cancel()

		c.mu.Lock()
		if c.session == sess {
			if err == nil {
				c.state = StateCompleted
			} else {
				c.state = StateFailed
			}
		}
		c.mu.Unlock()

		if err == nil {
			logging.Info("OAuth", "Login completed")
		} else {
			logging.Warn("OAuth", "Login failed: %v", err)
		}

		sess.err = err
		close(sess.done)
	})
}

func (c *Controller) setState(state SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

// advance moves sess from one state to the next if it is still current and
// has not moved on already.
func (c *Controller) advance(sess *session, from, to SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == sess && c.state == from {
		c.state = to
	}
}

// advanceFrom moves a live session to state regardless of its current step.
func (c *Controller) advanceFrom(sess *session, state SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == sess && c.state.InProgress() {
		c.state = state
	}
}
