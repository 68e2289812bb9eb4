package pgstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/password"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pg"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/twofactor"
)

const selectProfile = `
SELECT id, email, two_factor_enabled, two_factor_method, two_factor_secret, recovery_codes
FROM users
WHERE id = $1`

type profileRow struct {
	ID              uuid.UUID `db:"id"`
	Email           string    `db:"email"`
	Enabled         bool      `db:"two_factor_enabled"`
	Method          string    `db:"two_factor_method"`
	EncryptedSecret *string   `db:"two_factor_secret"`
	RecoveryCodes   []string  `db:"recovery_codes"`
}

func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*twofactor.Profile, error) {
	return s.profile(ctx, selectProfile, userID)
}

func (s *Store) GetProfileForUpdate(ctx context.Context, userID uuid.UUID) (*twofactor.Profile, error) {
	return s.profile(ctx, selectProfile+` FOR UPDATE`, userID)
}

func (s *Store) profile(ctx context.Context, query string, userID uuid.UUID) (*twofactor.Profile, error) {
	rows, err := s.db(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[profileRow])
	if pg.IsNotFoundError(err) {
		return nil, twofactor.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}

	state, err := twofactor.Record{
		Enabled:         row.Enabled,
		Method:          twofactor.MethodKind(row.Method),
		EncryptedSecret: row.EncryptedSecret,
		RecoveryHashes:  row.RecoveryCodes,
	}.State()
	if err != nil {
		return nil, err
	}
	return &twofactor.Profile{UserID: row.ID, Email: row.Email, State: state}, nil
}

func (s *Store) SaveState(ctx context.Context, userID uuid.UUID, state twofactor.State) error {
	rec := twofactor.RecordOf(state)
	hashes := rec.RecoveryHashes
	if hashes == nil {
		hashes = []string{}
	}

	tag, err := s.db(ctx).Exec(ctx, `
UPDATE users
SET two_factor_enabled = $2,
    two_factor_method  = $3,
    two_factor_secret  = $4,
    recovery_codes     = $5,
    updated_at         = now()
WHERE id = $1`,
		userID, rec.Enabled, string(rec.Method), rec.EncryptedSecret, hashes,
	)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return twofactor.ErrUserNotFound
	}
	return nil
}

func (s *Store) GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	var hash []byte
	err := s.db(ctx).QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash)
	if pg.IsNotFoundError(err) {
		return nil, password.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	if len(hash) == 0 {
		return nil, password.ErrNoPassword
	}
	return hash, nil
}
