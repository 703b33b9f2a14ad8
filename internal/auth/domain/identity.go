package domain

import "errors"

// ErrIdentityNotFound is returned when no account exists for the requested email.
var ErrIdentityNotFound = errors.New("identity not found")

// Identity is an account in the identity service.
type Identity struct {
	UID      string
	Email    string
	Password string
}
