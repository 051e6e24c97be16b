package vercel

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when a payload lacks its list field.
var ErrMalformedResponse = errors.New("malformed API response")

// ErrMissingAccessToken is returned when the token endpoint answers without a token.
var ErrMissingAccessToken = errors.New("token response did not contain an access token")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("vercel API error (%d %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("vercel API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsUnauthorized reports whether err is a 401 or 403 from the API, which
// means the stored token is no longer accepted.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
