package trusteddevice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
)

// Registry decides whether a device may skip the second factor.
type Registry struct {
	store  Store
	now    func() time.Time
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRegistry(store Store, opts ...Option) *Registry {
	r := &Registry{
		store:  store,
		now:    time.Now,
		ttl:    DefaultTTL,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsTrusted reports whether the device is trusted for the user. An expired
// record is deleted on sight; a valid one has its last use refreshed.
// Use never extends trust: ExpiresAt only moves when Trust is called again.
func (r *Registry) IsTrusted(ctx context.Context, userID uuid.UUID, fingerprint string) (bool, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return false, nil
	}

	d, err := r.store.GetDevice(ctx, userID, fingerprint)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrStorage, err)
	}

	now := r.now()
	if d.Expired(now) {
		if err := r.store.DeleteDevice(ctx, userID, d.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return false, errors.Join(ErrStorage, err)
		}
		r.logger.DebugContext(ctx, "expired trusted device evicted",
			logger.Component("trusteddevice"),
			logger.UserID(userID),
			logger.DeviceID(d.ID),
		)
		return false, nil
	}

	if err := r.store.TouchDevice(ctx, d.ID, now); err != nil {
		return false, errors.Join(ErrStorage, err)
	}
	return true, nil
}

// Trust records the device as trusted until now plus the TTL. Trusting a
// known fingerprint again refreshes it in place.
func (r *Registry) Trust(ctx context.Context, userID uuid.UUID, fingerprint string, info Info) (*Device, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, ErrMissingFingerprint
	}

	now := r.now()
	d, err := r.store.UpsertDevice(ctx, Device{
		ID:          uuid.New(),
		UserID:      userID,
		Fingerprint: fingerprint,
		Name:        info.Name,
		Browser:     info.Browser,
		OS:          info.OS,
		IPAddress:   info.IPAddress,
		LastUsedAt:  now,
		ExpiresAt:   now.Add(r.ttl),
		CreatedAt:   now,
	})
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}

	r.logger.InfoContext(ctx, "device trusted",
		logger.Component("trusteddevice"),
		logger.UserID(userID),
		logger.DeviceID(d.ID),
	)
	return d, nil
}

// List returns the user's devices, most recently used first.
func (r *Registry) List(ctx context.Context, userID uuid.UUID) ([]Device, error) {
	devices, err := r.store.ListDevices(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrStorage, err)
	}
	return devices, nil
}

func (r *Registry) Remove(ctx context.Context, userID, deviceID uuid.UUID) error {
	if err := r.store.DeleteDevice(ctx, userID, deviceID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return errors.Join(ErrStorage, err)
	}
	return nil
}

// RemoveAll forgets every device of the user.
func (r *Registry) RemoveAll(ctx context.Context, userID uuid.UUID) error {
	n, err := r.store.DeleteUserDevices(ctx, userID)
	if err != nil {
		return errors.Join(ErrStorage, err)
	}
	if n > 0 {
		r.logger.InfoContext(ctx, "trusted devices removed",
			logger.Component("trusteddevice"),
			logger.UserID(userID),
			logger.Count(n),
		)
	}
	return nil
}

// Cleanup deletes every expired record.
func (r *Registry) Cleanup(ctx context.Context) (int64, error) {
	n, err := r.store.DeleteExpiredDevices(ctx, r.now())
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return n, nil
}
