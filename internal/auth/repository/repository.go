package repository

import (
	"context"

	authdomain "findmy-backend/internal/auth/domain"
)

// IdentityRepository defines the identity service operations the seeder needs
type IdentityRepository interface {
	// FindByEmail returns authdomain.ErrIdentityNotFound when no account uses email.
	FindByEmail(ctx context.Context, email string) (*authdomain.Identity, error)
	// Create registers a new email/password account and returns it with its assigned UID.
	Create(ctx context.Context, email, password string) (*authdomain.Identity, error)
}
