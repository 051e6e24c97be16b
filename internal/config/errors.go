package config

import "fmt"

// FileError reports a configuration file that exists but could not be used.
type FileError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("error loading config from %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying read or parse error.
func (e *FileError) Unwrap() error {
	return e.Err
}
