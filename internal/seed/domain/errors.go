package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidDevice is returned when a device fixture fails validation before it is written.
var ErrInvalidDevice = errors.New("invalid device")

// ConfigurationError reports a missing or invalid environment setup.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IdentityServiceError reports an identity lookup or create failure other than not-found.
type IdentityServiceError struct {
	Op    string // "lookup" or "create"
	Email string
	Err   error
}

func (e *IdentityServiceError) Error() string {
	return fmt.Sprintf("identity service %s %s: %v", e.Op, e.Email, e.Err)
}

func (e *IdentityServiceError) Unwrap() error { return e.Err }

// DocumentStoreError reports a document write or read-back failure.
type DocumentStoreError struct {
	Op   string // "set" or "verify"
	Path string
	Err  error
}

func (e *DocumentStoreError) Error() string {
	return fmt.Sprintf("document store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentStoreError) Unwrap() error { return e.Err }
