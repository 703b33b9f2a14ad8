package domain

import (
	"errors"
	"time"
)

// ErrDeviceNotFound is returned when a device document does not exist.
var ErrDeviceNotFound = errors.New("device not found")

// CollectionDevices is the Firestore collection holding device records.
const CollectionDevices = "devices"

// Platform is the mobile platform a device runs on.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	return p == PlatformAndroid || p == PlatformIOS
}

// Status is the tracking state of a device.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusLost   Status = "LOST"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusLost
}

// Device is a document in the devices collection.
// Zero timestamps are written as server timestamps.
type Device struct {
	OwnerUID     string    `firestore:"ownerUid"`
	DeviceName   string    `firestore:"deviceName"`
	Platform     Platform  `firestore:"platform"`
	Status       Status    `firestore:"status"`
	FCMToken     string    `firestore:"fcmToken"`
	LastLocation *Location `firestore:"lastLocation,omitempty"`
	LostMode     *LostMode `firestore:"lostMode,omitempty"`
	UpdatedAt    time.Time `firestore:"updatedAt,serverTimestamp"`
}

// Location is the last position reported by a device.
type Location struct {
	Lat       float64   `firestore:"lat"`
	Lng       float64   `firestore:"lng"`
	Accuracy  float64   `firestore:"accuracy"`
	UpdatedAt time.Time `firestore:"updatedAt,serverTimestamp"`
}

// LostMode records when the owner marked the device as lost.
type LostMode struct {
	Enabled   bool      `firestore:"enabled"`
	EnabledAt time.Time `firestore:"enabledAt,serverTimestamp"`
}

// Clone returns a deep copy of the device.
func (d *Device) Clone() *Device {
	if d == nil {
		return nil
	}
	c := *d
	if d.LastLocation != nil {
		loc := *d.LastLocation
		c.LastLocation = &loc
	}
	if d.LostMode != nil {
		lm := *d.LostMode
		c.LostMode = &lm
	}
	return &c
}

// StampServerTimes fills every zero timestamp with now, mirroring what the
// document store does for server timestamp fields.
func (d *Device) StampServerTimes(now time.Time) {
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = now
	}
	if d.LastLocation != nil && d.LastLocation.UpdatedAt.IsZero() {
		d.LastLocation.UpdatedAt = now
	}
	if d.LostMode != nil && d.LostMode.EnabledAt.IsZero() {
		d.LostMode.EnabledAt = now
	}
}
