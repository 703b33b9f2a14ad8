package usecase

import (
	"context"

	devicedomain "findmy-backend/internal/device/domain"
	seeddomain "findmy-backend/internal/seed/domain"
)

// SeedUsecase defines the interface for loading development fixtures
type SeedUsecase interface {
	// EnsureTestIdentity looks the account up by email and creates it only when
	// the identity service reports it does not exist. Returns the account UID.
	EnsureTestIdentity(ctx context.Context, email, password string) (string, error)

	// SeedDevice fully overwrites the device document at deviceID
	SeedDevice(ctx context.Context, deviceID string, device *devicedomain.Device) error

	// Seed ensures the test identity and writes every fixture owned by it
	Seed(ctx context.Context, req SeedRequest) (*SeedResult, error)

	// Verify reads each device back and checks it is owned by ownerUID
	Verify(ctx context.Context, ownerUID string, deviceIDs []string) error
}

// SeedRequest describes one seeding pass
type SeedRequest struct {
	Email    string
	Password string
	Devices  []seeddomain.DeviceFixture
}

// SeedResult summarizes what a seeding pass did
type SeedResult struct {
	IdentityID      string
	IdentityCreated bool
	DeviceIDs       []string
}
