package memstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/password"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/twofactor"
)

func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*twofactor.Profile, error) {
	defer s.lock(ctx)()
	return s.profile(userID)
}

// GetProfileForUpdate is GetProfile; inside WithinTx the whole store is
// already locked.
func (s *Store) GetProfileForUpdate(ctx context.Context, userID uuid.UUID) (*twofactor.Profile, error) {
	defer s.lock(ctx)()
	return s.profile(userID)
}

func (s *Store) profile(userID uuid.UUID) (*twofactor.Profile, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, twofactor.ErrUserNotFound
	}
	state, err := u.record.State()
	if err != nil {
		return nil, err
	}
	return &twofactor.Profile{UserID: userID, Email: u.email, State: state}, nil
}

func (s *Store) SaveState(ctx context.Context, userID uuid.UUID, state twofactor.State) error {
	defer s.lock(ctx)()

	u, ok := s.users[userID]
	if !ok {
		return twofactor.ErrUserNotFound
	}
	u.record = twofactor.RecordOf(state)
	s.users[userID] = u
	return nil
}

// Record returns the raw stored two-factor columns of a user.
func (s *Store) Record(ctx context.Context, userID uuid.UUID) (twofactor.Record, bool) {
	defer s.lock(ctx)()
	u, ok := s.users[userID]
	return u.record, ok
}

func (s *Store) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	defer s.lock(ctx)()

	u, ok := s.users[userID]
	if !ok {
		return nil, password.ErrUserNotFound
	}
	if len(u.passwordHash) == 0 {
		return nil, password.ErrNoPassword
	}
	return append([]byte(nil), u.passwordHash...), nil
}
