package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
)

func (s *Store) InvalidateActiveCodes(ctx context.Context, userID uuid.UUID, purpose otpcode.Purpose, at time.Time) error {
	defer s.lock(ctx)()

	for id, c := range s.codes {
		if c.UserID == userID && c.Purpose == purpose && c.Active() {
			used := at
			c.UsedAt = &used
			s.codes[id] = c
		}
	}
	return nil
}

func (s *Store) CreateCode(ctx context.Context, code otpcode.Code) error {
	defer s.lock(ctx)()
	s.codes[code.ID] = copyCode(code)
	return nil
}

func (s *Store) LatestActiveCodeForUpdate(ctx context.Context, userID uuid.UUID, purpose otpcode.Purpose) (*otpcode.Code, error) {
	defer s.lock(ctx)()

	var latest *otpcode.Code
	for _, c := range s.codes {
		if c.UserID != userID || c.Purpose != purpose || !c.Active() {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			cc := copyCode(c)
			latest = &cc
		}
	}
	if latest == nil {
		return nil, otpcode.ErrNoActiveCode
	}
	return latest, nil
}

func (s *Store) UpdateCode(ctx context.Context, code otpcode.Code) error {
	defer s.lock(ctx)()

	stored, ok := s.codes[code.ID]
	if !ok {
		return otpcode.ErrNoActiveCode
	}
	stored.Attempts = code.Attempts
	stored.UsedAt = copyCode(code).UsedAt
	s.codes[code.ID] = stored
	return nil
}

func (s *Store) DeleteExpiredCodes(ctx context.Context, before time.Time) (int64, error) {
	defer s.lock(ctx)()

	var n int64
	for id, c := range s.codes {
		if c.ExpiresAt.Before(before) {
			delete(s.codes, id)
			n++
		}
	}
	return n, nil
}

// Codes returns every stored code of the user, for inspection in tests.
func (s *Store) Codes(ctx context.Context, userID uuid.UUID) []otpcode.Code {
	defer s.lock(ctx)()

	var out []otpcode.Code
	for _, c := range s.codes {
		if c.UserID == userID {
			out = append(out, copyCode(c))
		}
	}
	return out
}

func copyCode(c otpcode.Code) otpcode.Code {
	if c.UsedAt != nil {
		t := *c.UsedAt
		c.UsedAt = &t
	}
	return c
}
