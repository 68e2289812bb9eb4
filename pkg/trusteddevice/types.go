package trusteddevice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a device stays trusted after its last trust.
const DefaultTTL = 30 * 24 * time.Hour

// Info is the display metadata recorded for a device.
type Info struct {
	Name      string
	Browser   string
	OS        string
	IPAddress string
}

// Device is a trusted device record. At most one exists per
// (UserID, Fingerprint).
type Device struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Fingerprint string
	Name        string
	Browser     string
	OS          string
	IPAddress   string
	LastUsedAt  time.Time
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Expired reports whether the device's trust has lapsed at now.
func (d Device) Expired(now time.Time) bool {
	return d.ExpiresAt.Before(now)
}

// Store persists trusted devices.
type Store interface {
	// GetDevice returns ErrNotFound if the pair has no record.
	GetDevice(ctx context.Context, userID uuid.UUID, fingerprint string) (*Device, error)
	// UpsertDevice inserts d, or updates metadata, last_used_at and
	// expires_at of the existing record for the same pair, keeping its ID
	// and created_at. Returns the stored record.
	UpsertDevice(ctx context.Context, d Device) (*Device, error)
	TouchDevice(ctx context.Context, id uuid.UUID, lastUsedAt time.Time) error
	// ListDevices orders by last_used_at, newest first.
	ListDevices(ctx context.Context, userID uuid.UUID) ([]Device, error)
	// DeleteDevice returns ErrNotFound if no device with that ID belongs to
	// the user.
	DeleteDevice(ctx context.Context, userID, id uuid.UUID) error
	DeleteUserDevices(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteExpiredDevices(ctx context.Context, before time.Time) (int64, error)
}
