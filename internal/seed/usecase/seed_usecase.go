package usecase

import (
	"context"
	"errors"
	"fmt"

	authdomain "findmy-backend/internal/auth/domain"
	authrepo "findmy-backend/internal/auth/repository"
	devicedomain "findmy-backend/internal/device/domain"
	devicerepo "findmy-backend/internal/device/repository"
	seeddomain "findmy-backend/internal/seed/domain"

	"github.com/rs/zerolog"
)

// Config holds the dependencies of the seed usecase
type Config struct {
	Identities authrepo.IdentityRepository
	Devices    devicerepo.DeviceRepository
	Logger     zerolog.Logger
}

// seedUsecase implements SeedUsecase interface
type seedUsecase struct {
	identities authrepo.IdentityRepository
	devices    devicerepo.DeviceRepository
	logger     zerolog.Logger
}

// NewSeedUsecase creates a new instance of seedUsecase
func NewSeedUsecase(cfg Config) SeedUsecase {
	return &seedUsecase{
		identities: cfg.Identities,
		devices:    cfg.Devices,
		logger:     cfg.Logger.With().Str("component", "seed").Logger(),
	}
}

func (u *seedUsecase) EnsureTestIdentity(ctx context.Context, email, password string) (string, error) {
	uid, _, err := u.ensureIdentity(ctx, email, password)
	return uid, err
}

// ensureIdentity also reports whether the account was created by this call.
func (u *seedUsecase) ensureIdentity(ctx context.Context, email, password string) (string, bool, error) {
	identity, err := u.identities.FindByEmail(ctx, email)
	if err == nil {
		u.logger.Info().Str("email", email).Str("uid", identity.UID).Msg("user already exists")
		return identity.UID, false, nil
	}
	if !errors.Is(err, authdomain.ErrIdentityNotFound) {
		return "", false, &seeddomain.IdentityServiceError{Op: "lookup", Email: email, Err: err}
	}

	identity, err = u.identities.Create(ctx, email, password)
	if err != nil {
		return "", false, &seeddomain.IdentityServiceError{Op: "create", Email: email, Err: err}
	}
	u.logger.Info().Str("email", email).Str("uid", identity.UID).Msg("created user")
	return identity.UID, true, nil
}

func (u *seedUsecase) SeedDevice(ctx context.Context, deviceID string, device *devicedomain.Device) error {
	path := devicedomain.CollectionDevices + "/" + deviceID
	if err := validateDevice(deviceID, device); err != nil {
		return &seeddomain.DocumentStoreError{Op: "set", Path: path, Err: err}
	}

	if err := u.devices.Set(ctx, deviceID, device); err != nil {
		return &seeddomain.DocumentStoreError{Op: "set", Path: path, Err: err}
	}
	u.logger.Info().
		Str("device_id", deviceID).
		Str("status", string(device.Status)).
		Str("platform", string(device.Platform)).
		Msg("seeded device")
	return nil
}

func (u *seedUsecase) Seed(ctx context.Context, req SeedRequest) (*SeedResult, error) {
	u.logger.Info().Int("devices", len(req.Devices)).Msg("seeding data")

	uid, created, err := u.ensureIdentity(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	result := &SeedResult{
		IdentityID:      uid,
		IdentityCreated: created,
		DeviceIDs:       make([]string, 0, len(req.Devices)),
	}
	for _, fixture := range req.Devices {
		device := fixture.Device.Clone()
		device.OwnerUID = uid
		if err := u.SeedDevice(ctx, fixture.ID, device); err != nil {
			return result, err
		}
		result.DeviceIDs = append(result.DeviceIDs, fixture.ID)
	}
	return result, nil
}

func (u *seedUsecase) Verify(ctx context.Context, ownerUID string, deviceIDs []string) error {
	for _, id := range deviceIDs {
		path := devicedomain.CollectionDevices + "/" + id
		device, err := u.devices.Get(ctx, id)
		if err != nil {
			return &seeddomain.DocumentStoreError{Op: "verify", Path: path, Err: err}
		}
		if device.OwnerUID != ownerUID {
			return &seeddomain.DocumentStoreError{
				Op:   "verify",
				Path: path,
				Err:  fmt.Errorf("owner %q, want %q", device.OwnerUID, ownerUID),
			}
		}
	}
	u.logger.Info().Int("devices", len(deviceIDs)).Msg("verified seeded devices")
	return nil
}

func validateDevice(deviceID string, device *devicedomain.Device) error {
	switch {
	case deviceID == "":
		return fmt.Errorf("%w: empty document id", seeddomain.ErrInvalidDevice)
	case device == nil:
		return fmt.Errorf("%w: nil device", seeddomain.ErrInvalidDevice)
	case device.OwnerUID == "":
		return fmt.Errorf("%w: missing owner", seeddomain.ErrInvalidDevice)
	case !device.Platform.Valid():
		return fmt.Errorf("%w: unknown platform %q", seeddomain.ErrInvalidDevice, device.Platform)
	case !device.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", seeddomain.ErrInvalidDevice, device.Status)
	}
	return nil
}
