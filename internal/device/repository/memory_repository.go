package repository

import (
	"context"
	"sync"
	"time"

	devicedomain "findmy-backend/internal/device/domain"
)

// InMemoryDeviceRepository is an in-memory DeviceRepository used by tests.
// It substitutes the clock's time for zero timestamps the way Firestore
// substitutes server timestamps.
type InMemoryDeviceRepository struct {
	mu      sync.RWMutex
	devices map[string]*devicedomain.Device
	now     func() time.Time

	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
	// Writes counts Set calls, including failed ones.
	Writes int
}

// NewInMemoryDeviceRepository creates an empty repository using time.Now.
func NewInMemoryDeviceRepository() *InMemoryDeviceRepository {
	return &InMemoryDeviceRepository{
		devices: make(map[string]*devicedomain.Device),
		now:     time.Now,
	}
}

// WithClock replaces the clock used for server timestamps.
func (r *InMemoryDeviceRepository) WithClock(now func() time.Time) *InMemoryDeviceRepository {
	r.now = now
	return r
}

func (r *InMemoryDeviceRepository) Set(_ context.Context, id string, device *devicedomain.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Writes++
	if r.SetErr != nil {
		return r.SetErr
	}

	stored := device.Clone()
	stored.StampServerTimes(r.now())
	r.devices[id] = stored
	return nil
}

func (r *InMemoryDeviceRepository) Get(_ context.Context, id string) (*devicedomain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	device, ok := r.devices[id]
	if !ok {
		return nil, devicedomain.ErrDeviceNotFound
	}
	return device.Clone(), nil
}

// IDs returns the ids of all stored documents.
func (r *InMemoryDeviceRepository) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.devices))
	for id := range r.devices {
		ids = append(ids, id)
	}
	return ids
}
