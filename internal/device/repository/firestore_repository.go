package repository

import (
	"context"
	"fmt"

	devicedomain "findmy-backend/internal/device/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreDeviceRepository implements DeviceRepository on Cloud Firestore
type firestoreDeviceRepository struct {
	client *firestore.Client
}

// NewFirestoreDeviceRepository creates a new instance of firestoreDeviceRepository
func NewFirestoreDeviceRepository(client *firestore.Client) DeviceRepository {
	return &firestoreDeviceRepository{
		client: client,
	}
}

func (r *firestoreDeviceRepository) Set(ctx context.Context, id string, device *devicedomain.Device) error {
	// Set without MergeAll replaces the whole document
	if _, err := r.client.Collection(devicedomain.CollectionDevices).Doc(id).Set(ctx, device); err != nil {
		return fmt.Errorf("failed to set device %s: %w", id, err)
	}
	return nil
}

func (r *firestoreDeviceRepository) Get(ctx context.Context, id string) (*devicedomain.Device, error) {
	snap, err := r.client.Collection(devicedomain.CollectionDevices).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, devicedomain.ErrDeviceNotFound
		}
		return nil, fmt.Errorf("failed to get device %s: %w", id, err)
	}

	var device devicedomain.Device
	if err := snap.DataTo(&device); err != nil {
		return nil, fmt.Errorf("failed to decode device %s: %w", id, err)
	}
	return &device, nil
}
