package domain

import (
	devicedomain "findmy-backend/internal/device/domain"
)

// Default test account credentials.
const (
	DefaultEmail    = "test@example.com"
	DefaultPassword = "password123"
)

// Well-known device document ids.
const (
	DeviceIDActive = "seeded_device_1"
	DeviceIDLost   = "seeded_device_2"
)

// DeviceFixture is a device document written under a fixed id.
// OwnerUID is left empty and filled in with the resolved identity at seed time.
type DeviceFixture struct {
	ID     string
	Device devicedomain.Device
}

// DefaultDevices returns the standard fixture set: one active Android phone and
// one iPhone already in lost mode with a last known location in San Francisco.
func DefaultDevices() []DeviceFixture {
	return []DeviceFixture{
		{
			ID: DeviceIDActive,
			Device: devicedomain.Device{
				DeviceName: "Seeded Android Phone",
				Platform:   devicedomain.PlatformAndroid,
				Status:     devicedomain.StatusActive,
				FCMToken:   "fake_token_1",
			},
		},
		{
			ID: DeviceIDLost,
			Device: devicedomain.Device{
				DeviceName: "Seeded iPhone",
				Platform:   devicedomain.PlatformIOS,
				Status:     devicedomain.StatusLost,
				FCMToken:   "fake_token_2",
				LastLocation: &devicedomain.Location{
					Lat:      37.7749,
					Lng:      -122.4194,
					Accuracy: 10.0,
				},
				LostMode: &devicedomain.LostMode{
					Enabled: true,
				},
			},
		},
	}
}
