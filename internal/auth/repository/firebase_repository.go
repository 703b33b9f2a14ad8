package repository

import (
	"context"
	"fmt"

	authdomain "findmy-backend/internal/auth/domain"

	"firebase.google.com/go/v4/auth"
)

// AuthClient is the subset of *auth.Client used by the identity repository
type AuthClient interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
}

// firebaseIdentityRepository implements IdentityRepository on Firebase Authentication
type firebaseIdentityRepository struct {
	client AuthClient
}

// NewFirebaseIdentityRepository creates a new instance of firebaseIdentityRepository
func NewFirebaseIdentityRepository(client AuthClient) IdentityRepository {
	return &firebaseIdentityRepository{
		client: client,
	}
}

func (r *firebaseIdentityRepository) FindByEmail(ctx context.Context, email string) (*authdomain.Identity, error) {
	user, err := r.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, authdomain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toIdentity(user), nil
}

func (r *firebaseIdentityRepository) Create(ctx context.Context, email, password string) (*authdomain.Identity, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)

	user, err := r.client.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toIdentity(user), nil
}

func toIdentity(user *auth.UserRecord) *authdomain.Identity {
	if user == nil || user.UserInfo == nil {
		return &authdomain.Identity{}
	}
	return &authdomain.Identity{
		UID:   user.UID,
		Email: user.Email,
	}
}
