package repository

import (
	"context"
	"errors"
	"sync"

	authdomain "findmy-backend/internal/auth/domain"

	"github.com/google/uuid"
)

// ErrEmailExists is returned by InMemoryIdentityRepository.Create for a duplicate email.
var ErrEmailExists = errors.New("email already exists")

// InMemoryIdentityRepository is an in-memory IdentityRepository used by tests.
type InMemoryIdentityRepository struct {
	mu         sync.Mutex
	identities map[string]*authdomain.Identity // keyed by email

	// LookupErr, when non-nil, is returned by every FindByEmail call.
	LookupErr error
	// CreateErr, when non-nil, is returned by every Create call.
	CreateErr error

	Lookups int
	Creates int
}

// NewInMemoryIdentityRepository creates an empty repository.
func NewInMemoryIdentityRepository() *InMemoryIdentityRepository {
	return &InMemoryIdentityRepository{
		identities: make(map[string]*authdomain.Identity),
	}
}

func (r *InMemoryIdentityRepository) FindByEmail(_ context.Context, email string) (*authdomain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Lookups++
	if r.LookupErr != nil {
		return nil, r.LookupErr
	}
	identity, ok := r.identities[email]
	if !ok {
		return nil, authdomain.ErrIdentityNotFound
	}
	return &authdomain.Identity{UID: identity.UID, Email: identity.Email}, nil
}

func (r *InMemoryIdentityRepository) Create(_ context.Context, email, password string) (*authdomain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Creates++
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	if _, ok := r.identities[email]; ok {
		return nil, ErrEmailExists
	}
	identity := &authdomain.Identity{
		UID:      uuid.New().String(),
		Email:    email,
		Password: password,
	}
	r.identities[email] = identity
	return &authdomain.Identity{UID: identity.UID, Email: identity.Email}, nil
}

// Count returns the number of stored accounts.
func (r *InMemoryIdentityRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.identities)
}
