package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	messages := make([]string, 0, len(ve))
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{Field: field, Message: message})
}

// Validate checks the settings every command needs.
func (c Config) Validate() error {
	var errs ValidationErrors

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs.Add("api.baseURL", "must be an absolute URL")
	}
	if c.API.Timeout < 0 {
		errs.Add("api.timeout", "must not be negative")
	}
	if c.OAuth.CallbackPort < 0 || c.OAuth.CallbackPort > 65535 {
		errs.Add("oauth.callbackPort", "must be between 0 and 65535")
	}
	if c.OAuth.LoginTimeout < 0 {
		errs.Add("oauth.loginTimeout", "must not be negative")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateLogin checks the settings the browser login needs on top of Validate.
func (c Config) ValidateLogin() error {
	if err := c.Validate(); err != nil {
		return err
	}

	var errs ValidationErrors
	if c.OAuth.ClientID == "" {
		errs.Add("oauth.clientID", "is required (set CLIENT_ID)")
	}
	if c.OAuth.ClientSecret == "" {
		errs.Add("oauth.clientSecret", "is required (set CLIENT_SECRET)")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
