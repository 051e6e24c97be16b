package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"vercelctl/internal/oauth"
	"vercelctl/internal/vercel"
)

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a network connectivity error (e.g., refused, unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates the API could not be reached.
type ConnectionError struct {
	// Endpoint is the API root that could not be reached.
	Endpoint string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

// Error returns the error message.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s reaching %s: %v", e.Type, e.Endpoint, e.Reason)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// ClassifyConnectionError returns a ConnectionError when err is a transport
// failure, and nil otherwise. API status errors are not connection errors.
func ClassifyConnectionError(err error, endpoint string) *ConnectionError {
	if err == nil {
		return nil
	}
	var apiErr *vercel.APIError
	if errors.As(err, &apiErr) {
		return nil
	}

	classify := func(t ConnectionErrorType) *ConnectionError {
		return &ConnectionError{Endpoint: endpoint, Type: t, Reason: err}
	}

	switch {
	case isTLSError(err):
		return classify(ConnectionErrorTLS)
	case isDNSError(err):
		return classify(ConnectionErrorDNS)
	case isTimeoutError(err):
		return classify(ConnectionErrorTimeout)
	case isNetworkError(err.Error()):
		return classify(ConnectionErrorNetwork)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return classify(ConnectionErrorUnknown)
	}
	return nil
}

func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr *x509.HostnameError
	var unknownAuthErr *x509.UnknownAuthorityError
	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unknownAuthErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "certificate", "tls:"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "deadline exceeded")
}

func isNetworkError(errStr string) bool {
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
	}
	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// AuthRequiredError indicates no token is stored, or the API rejected it.
type AuthRequiredError struct {
	// Reason is set when the API rejected a stored token.
	Reason error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthRequiredError) Error() string {
	headline := "Not logged in"
	if e.Reason != nil {
		headline = fmt.Sprintf("Stored token was rejected: %v", e.Reason)
	}
	return fmt.Sprintf(`%s

To authenticate, run:
  vercelctl auth login

To check current authentication status:
  vercelctl auth status`, headline)
}

// Unwrap returns the underlying error.
func (e *AuthRequiredError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthRequiredError) Is(target error) bool {
	_, ok := target.(*AuthRequiredError)
	return ok
}

// AuthFailedError indicates the browser login did not produce a token.
type AuthFailedError struct {
	// Reason is the underlying error.
	Reason error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthFailedError) Error() string {
	return fmt.Sprintf(`Authentication failed: %v
%s
To retry authentication, run:
  vercelctl auth login`, e.Reason, authFailedHint(e.Reason))
}

// Unwrap returns the underlying error.
func (e *AuthFailedError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthFailedError) Is(target error) bool {
	_, ok := target.(*AuthFailedError)
	return ok
}

func authFailedHint(err error) string {
	var listenErr *oauth.ListenError
	switch {
	case errors.As(err, &listenErr):
		return "\nAnother program is using the callback port. Free it or set CALLBACK_PORT.\n"
	case errors.Is(err, oauth.ErrLoginInProgress):
		return "\nFinish the login already open in your browser first.\n"
	case errors.Is(err, oauth.ErrLoginTimeout):
		return "\nThe browser login was not completed in time.\n"
	case errors.Is(err, oauth.ErrMissingClientID):
		return "\nSet CLIENT_ID and CLIENT_SECRET, or oauth.clientID in the config file.\n"
	default:
		return ""
	}
}

// WrapAPIError turns API failures into the CLI error types: rejected tokens
// become AuthRequiredError and transport failures become ConnectionError.
func WrapAPIError(err error, endpoint string) error {
	if err == nil {
		return nil
	}
	if vercel.IsUnauthorized(err) {
		return &AuthRequiredError{Reason: err}
	}
	if connErr := ClassifyConnectionError(err, endpoint); connErr != nil {
		return connErr
	}
	return err
}
