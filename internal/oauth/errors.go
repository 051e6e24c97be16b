package oauth

import (
	"errors"
	"fmt"
)

var (
	// ErrLoginInProgress is returned by Start while another session is live.
	ErrLoginInProgress = errors.New("login already in progress")

	// ErrMissingCallbackParams means the callback lacked code or state.
	ErrMissingCallbackParams = errors.New("callback is missing code or state")

	// ErrStateMismatch means the callback state did not match the session nonce.
	ErrStateMismatch = errors.New("callback state does not match login session")

	// ErrLoginTimeout means the user did not complete the browser login in time.
	ErrLoginTimeout = errors.New("timed out waiting for browser login")

	// ErrNoLoginSession is returned by Wait when Start was never called.
	ErrNoLoginSession = errors.New("no login session")

	// ErrMissingClientID is returned by Start when no client id is configured.
	ErrMissingClientID = errors.New("OAuth client id is not configured")
)

// ListenError reports that the callback listener could not be bound.
type ListenError struct {
	Addr string
	Err  error
}

// Error implements the error interface.
func (e *ListenError) Error() string {
	return fmt.Sprintf("failed to start callback server on %s: %v", e.Addr, e.Err)
}

// Unwrap returns the underlying bind error.
func (e *ListenError) Unwrap() error {
	return e.Err
}

// ExchangeError reports a failure between a valid callback and a persisted token.
type ExchangeError struct {
	Err error
}

// Error implements the error interface.
func (e *ExchangeError) Error() string {
	return "error exchanging access token: " + e.Err.Error()
}

// Unwrap returns the underlying exchange or persistence error.
func (e *ExchangeError) Unwrap() error {
	return e.Err
}
