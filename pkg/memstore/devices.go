package memstore

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
)

func (s *Store) GetDevice(ctx context.Context, userID uuid.UUID, fingerprint string) (*trusteddevice.Device, error) {
	defer s.lock(ctx)()

	for _, d := range s.devices {
		if d.UserID == userID && d.Fingerprint == fingerprint {
			return &d, nil
		}
	}
	return nil, trusteddevice.ErrNotFound
}

func (s *Store) UpsertDevice(ctx context.Context, d trusteddevice.Device) (*trusteddevice.Device, error) {
	defer s.lock(ctx)()

	for id, existing := range s.devices {
		if existing.UserID == d.UserID && existing.Fingerprint == d.Fingerprint {
			d.ID = existing.ID
			d.CreatedAt = existing.CreatedAt
			s.devices[id] = d
			return &d, nil
		}
	}
	s.devices[d.ID] = d
	return &d, nil
}

func (s *Store) TouchDevice(ctx context.Context, id uuid.UUID, lastUsedAt time.Time) error {
	defer s.lock(ctx)()

	d, ok := s.devices[id]
	if !ok {
		return trusteddevice.ErrNotFound
	}
	d.LastUsedAt = lastUsedAt
	s.devices[id] = d
	return nil
}

func (s *Store) ListDevices(ctx context.Context, userID uuid.UUID) ([]trusteddevice.Device, error) {
	defer s.lock(ctx)()

	out := []trusteddevice.Device{}
	for _, d := range s.devices {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b trusteddevice.Device) int {
		return b.LastUsedAt.Compare(a.LastUsedAt)
	})
	return out, nil
}

func (s *Store) DeleteDevice(ctx context.Context, userID, id uuid.UUID) error {
	defer s.lock(ctx)()

	d, ok := s.devices[id]
	if !ok || d.UserID != userID {
		return trusteddevice.ErrNotFound
	}
	delete(s.devices, id)
	return nil
}

func (s *Store) DeleteUserDevices(ctx context.Context, userID uuid.UUID) (int64, error) {
	defer s.lock(ctx)()

	var n int64
	for id, d := range s.devices {
		if d.UserID == userID {
			delete(s.devices, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) DeleteExpiredDevices(ctx context.Context, before time.Time) (int64, error) {
	defer s.lock(ctx)()

	var n int64
	for id, d := range s.devices {
		if d.Expired(before) {
			delete(s.devices, id)
			n++
		}
	}
	return n, nil
}
