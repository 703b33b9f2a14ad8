package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "findmy-backend/internal/auth/domain"
	authrepo "findmy-backend/internal/auth/repository"
	devicedomain "findmy-backend/internal/device/domain"
	devicerepo "findmy-backend/internal/device/repository"
	seeddomain "findmy-backend/internal/seed/domain"
	"findmy-backend/internal/seed/usecase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeeder(identities *authrepo.InMemoryIdentityRepository, devices *devicerepo.InMemoryDeviceRepository) usecase.SeedUsecase {
	return usecase.NewSeedUsecase(usecase.Config{
		Identities: identities,
		Devices:    devices,
		Logger:     zerolog.Nop(),
	})
}

func defaultRequest() usecase.SeedRequest {
	return usecase.SeedRequest{
		Email:    seeddomain.DefaultEmail,
		Password: seeddomain.DefaultPassword,
		Devices:  seeddomain.DefaultDevices(),
	}
}

func TestEnsureTestIdentity_CreatesWhenNotFound(t *testing.T) {
	identities := authrepo.NewInMemoryIdentityRepository()
	seeder := newSeeder(identities, devicerepo.NewInMemoryDeviceRepository())

	uid, err := seeder.EnsureTestIdentity(context.Background(), "test@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, uid)
	assert.Equal(t, 1, identities.Lookups)
	assert.Equal(t, 1, identities.Creates)
	assert.Equal(t, 1, identities.Count())
}

func TestEnsureTestIdentity_ReusesExisting(t *testing.T) {
	ctx := context.Background()
	identities := authrepo.NewInMemoryIdentityRepository()
	existing, err := identities.Create(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	identities.Creates = 0

	seeder := newSeeder(identities, devicerepo.NewInMemoryDeviceRepository())
	uid, err := seeder.EnsureTestIdentity(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, existing.UID, uid)
	assert.Equal(t, 0, identities.Creates)
}

func TestEnsureTestIdentity_LookupFailureIsNotNotFound(t *testing.T) {
	identities := authrepo.NewInMemoryIdentityRepository()
	identities.LookupErr = errors.New("service unavailable")
	seeder := newSeeder(identities, devicerepo.NewInMemoryDeviceRepository())

	_, err := seeder.EnsureTestIdentity(context.Background(), "test@example.com", "password123")
	require.Error(t, err)

	var idErr *seeddomain.IdentityServiceError
	require.True(t, errors.As(err, &idErr))
	assert.Equal(t, "lookup", idErr.Op)
	assert.Equal(t, 0, identities.Creates)
}

func TestEnsureTestIdentity_CreateFailure(t *testing.T) {
	identities := authrepo.NewInMemoryIdentityRepository()
	identities.CreateErr = errors.New("quota exceeded")
	seeder := newSeeder(identities, devicerepo.NewInMemoryDeviceRepository())

	_, err := seeder.EnsureTestIdentity(context.Background(), "test@example.com", "password123")

	var idErr *seeddomain.IdentityServiceError
	require.True(t, errors.As(err, &idErr))
	assert.Equal(t, "create", idErr.Op)
	assert.ErrorIs(t, err, identities.CreateErr)
}

func TestSeedDevice_OverwritesDocument(t *testing.T) {
	ctx := context.Background()
	devices := devicerepo.NewInMemoryDeviceRepository()
	seeder := newSeeder(authrepo.NewInMemoryIdentityRepository(), devices)

	lost := &devicedomain.Device{
		OwnerUID:     "uid-1",
		DeviceName:   "Old",
		Platform:     devicedomain.PlatformIOS,
		Status:       devicedomain.StatusLost,
		LastLocation: &devicedomain.Location{Lat: 1, Lng: 2},
		LostMode:     &devicedomain.LostMode{Enabled: true},
	}
	require.NoError(t, seeder.SeedDevice(ctx, "dev", lost))

	active := &devicedomain.Device{
		OwnerUID:   "uid-1",
		DeviceName: "New",
		Platform:   devicedomain.PlatformAndroid,
		Status:     devicedomain.StatusActive,
	}
	require.NoError(t, seeder.SeedDevice(ctx, "dev", active))

	got, err := devices.Get(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, "New", got.DeviceName)
	assert.Nil(t, got.LastLocation, "overwrite must not merge old fields")
	assert.Nil(t, got.LostMode)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSeedDevice_RejectsInvalidDevice(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		device *devicedomain.Device
	}{
		{"empty id", "", &devicedomain.Device{OwnerUID: "u", Platform: devicedomain.PlatformIOS, Status: devicedomain.StatusActive}},
		{"nil device", "d", nil},
		{"missing owner", "d", &devicedomain.Device{Platform: devicedomain.PlatformIOS, Status: devicedomain.StatusActive}},
		{"bad platform", "d", &devicedomain.Device{OwnerUID: "u", Platform: "windows", Status: devicedomain.StatusActive}},
		{"bad status", "d", &devicedomain.Device{OwnerUID: "u", Platform: devicedomain.PlatformIOS, Status: "STOLEN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices := devicerepo.NewInMemoryDeviceRepository()
			seeder := newSeeder(authrepo.NewInMemoryIdentityRepository(), devices)

			err := seeder.SeedDevice(context.Background(), tt.id, tt.device)
			require.ErrorIs(t, err, seeddomain.ErrInvalidDevice)

			var dsErr *seeddomain.DocumentStoreError
			require.True(t, errors.As(err, &dsErr))
			assert.Equal(t, 0, devices.Writes)
		})
	}
}

func TestSeedDevice_WriteFailure(t *testing.T) {
	devices := devicerepo.NewInMemoryDeviceRepository()
	devices.SetErr = errors.New("deadline exceeded")
	seeder := newSeeder(authrepo.NewInMemoryIdentityRepository(), devices)

	err := seeder.SeedDevice(context.Background(), "seeded_device_1", &devicedomain.Device{
		OwnerUID: "u",
		Platform: devicedomain.PlatformAndroid,
		Status:   devicedomain.StatusActive,
	})

	var dsErr *seeddomain.DocumentStoreError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, "set", dsErr.Op)
	assert.Equal(t, "devices/seeded_device_1", dsErr.Path)
}

func TestSeed_EmptyState(t *testing.T) {
	ctx := context.Background()
	identities := authrepo.NewInMemoryIdentityRepository()
	devices := devicerepo.NewInMemoryDeviceRepository()
	seeder := newSeeder(identities, devices)

	result, err := seeder.Seed(ctx, defaultRequest())
	require.NoError(t, err)
	assert.True(t, result.IdentityCreated)
	assert.Equal(t, []string{"seeded_device_1", "seeded_device_2"}, result.DeviceIDs)
	assert.Equal(t, 1, identities.Creates)

	active, err := devices.Get(ctx, "seeded_device_1")
	require.NoError(t, err)
	assert.Equal(t, result.IdentityID, active.OwnerUID)
	assert.Equal(t, devicedomain.StatusActive, active.Status)
	assert.Equal(t, devicedomain.PlatformAndroid, active.Platform)
	assert.Equal(t, "fake_token_1", active.FCMToken)

	lost, err := devices.Get(ctx, "seeded_device_2")
	require.NoError(t, err)
	assert.Equal(t, result.IdentityID, lost.OwnerUID)
	assert.Equal(t, devicedomain.StatusLost, lost.Status)
	assert.Equal(t, devicedomain.PlatformIOS, lost.Platform)
	require.NotNil(t, lost.LostMode)
	assert.True(t, lost.LostMode.Enabled)
	assert.False(t, lost.LostMode.EnabledAt.IsZero())
	require.NotNil(t, lost.LastLocation)
	assert.Equal(t, 37.7749, lost.LastLocation.Lat)
	assert.Equal(t, -122.4194, lost.LastLocation.Lng)
	assert.Equal(t, 10.0, lost.LastLocation.Accuracy)
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	identities := authrepo.NewInMemoryIdentityRepository()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	devices := devicerepo.NewInMemoryDeviceRepository().WithClock(func() time.Time { return clock })
	seeder := newSeeder(identities, devices)

	first, err := seeder.Seed(ctx, defaultRequest())
	require.NoError(t, err)
	firstLost, err := devices.Get(ctx, "seeded_device_2")
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	second, err := seeder.Seed(ctx, defaultRequest())
	require.NoError(t, err)
	secondLost, err := devices.Get(ctx, "seeded_device_2")
	require.NoError(t, err)

	assert.False(t, second.IdentityCreated)
	assert.Equal(t, first.IdentityID, second.IdentityID)
	assert.Equal(t, 1, identities.Count())
	assert.Equal(t, 1, identities.Creates)
	assert.ElementsMatch(t, []string{"seeded_device_1", "seeded_device_2"}, devices.IDs())

	// Identical apart from server timestamps
	assert.True(t, secondLost.UpdatedAt.After(firstLost.UpdatedAt))
	zeroTimes(firstLost)
	zeroTimes(secondLost)
	assert.Equal(t, firstLost, secondLost)
}

func TestSeed_NotFoundCreatesOnceAndOwnsBothDevices(t *testing.T) {
	ctx := context.Background()
	identities := authrepo.NewInMemoryIdentityRepository()
	devices := devicerepo.NewInMemoryDeviceRepository()
	seeder := newSeeder(identities, devices)

	result, err := seeder.Seed(ctx, defaultRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, identities.Creates)

	for _, id := range []string{"seeded_device_1", "seeded_device_2"} {
		device, err := devices.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, result.IdentityID, device.OwnerUID, id)
	}
}

func TestSeed_LookupFailureWritesNothing(t *testing.T) {
	identities := authrepo.NewInMemoryIdentityRepository()
	identities.LookupErr = errors.New("transient")
	devices := devicerepo.NewInMemoryDeviceRepository()
	seeder := newSeeder(identities, devices)

	result, err := seeder.Seed(context.Background(), defaultRequest())
	require.Error(t, err)
	assert.Nil(t, result)

	var idErr *seeddomain.IdentityServiceError
	assert.True(t, errors.As(err, &idErr))
	assert.Equal(t, 0, identities.Creates)
	assert.Equal(t, 0, devices.Writes)
}

func TestSeed_DoesNotMutateFixtures(t *testing.T) {
	req := defaultRequest()
	seeder := newSeeder(authrepo.NewInMemoryIdentityRepository(), devicerepo.NewInMemoryDeviceRepository())

	_, err := seeder.Seed(context.Background(), req)
	require.NoError(t, err)
	for _, fixture := range req.Devices {
		assert.Empty(t, fixture.Device.OwnerUID)
	}
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	devices := devicerepo.NewInMemoryDeviceRepository()
	seeder := newSeeder(authrepo.NewInMemoryIdentityRepository(), devices)

	result, err := seeder.Seed(ctx, defaultRequest())
	require.NoError(t, err)
	require.NoError(t, seeder.Verify(ctx, result.IdentityID, result.DeviceIDs))

	err = seeder.Verify(ctx, "someone-else", result.DeviceIDs)
	var dsErr *seeddomain.DocumentStoreError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, "verify", dsErr.Op)

	err = seeder.Verify(ctx, result.IdentityID, []string{"missing"})
	assert.ErrorIs(t, err, devicedomain.ErrDeviceNotFound)
}

func TestIdentityNotFoundSentinel(t *testing.T) {
	_, err := authrepo.NewInMemoryIdentityRepository().FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, authdomain.ErrIdentityNotFound)
}

func zeroTimes(d *devicedomain.Device) {
	d.UpdatedAt = time.Time{}
	if d.LastLocation != nil {
		d.LastLocation.UpdatedAt = time.Time{}
	}
	if d.LostMode != nil {
		d.LostMode.EnabledAt = time.Time{}
	}
}
