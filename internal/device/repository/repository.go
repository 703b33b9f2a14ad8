package repository

import (
	"context"

	devicedomain "findmy-backend/internal/device/domain"
)

// DeviceRepository defines the document store operations the seeder needs
type DeviceRepository interface {
	// Set fully overwrites the device document at id.
	Set(ctx context.Context, id string, device *devicedomain.Device) error
	// Get returns devicedomain.ErrDeviceNotFound when the document is absent.
	Get(ctx context.Context, id string) (*devicedomain.Device, error)
}
