package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pg"
)

const codeColumns = `id, user_id, code_hash, purpose, attempts, max_attempts, expires_at, used_at, created_at`

type codeRow struct {
	ID          uuid.UUID  `db:"id"`
	UserID      uuid.UUID  `db:"user_id"`
	CodeHash    string     `db:"code_hash"`
	Purpose     string     `db:"purpose"`
	Attempts    int        `db:"attempts"`
	MaxAttempts int        `db:"max_attempts"`
	ExpiresAt   time.Time  `db:"expires_at"`
	UsedAt      *time.Time `db:"used_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (r codeRow) code() *otpcode.Code {
	c := &otpcode.Code{
		ID:          r.ID,
		UserID:      r.UserID,
		CodeHash:    r.CodeHash,
		Purpose:     otpcode.Purpose(r.Purpose),
		Attempts:    r.Attempts,
		MaxAttempts: r.MaxAttempts,
		ExpiresAt:   r.ExpiresAt.UTC(),
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if r.UsedAt != nil {
		t := r.UsedAt.UTC()
		c.UsedAt = &t
	}
	return c
}

// InvalidateActiveCodes also takes a transaction-scoped advisory lock on
// the pair, so concurrent issuers queue up instead of colliding on the
// single-active-code index.
func (s *Store) InvalidateActiveCodes(ctx context.Context, userID uuid.UUID, purpose otpcode.Purpose, at time.Time) error {
	db := s.db(ctx)
	if _, err := db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, userID.String()+":"+purpose.String()); err != nil {
		return errors.Join(ErrQuery, err)
	}
	_, err := db.Exec(ctx, `
UPDATE one_time_codes
SET used_at = $3
WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL`,
		userID, purpose.String(), at,
	)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

func (s *Store) CreateCode(ctx context.Context, c otpcode.Code) error {
	_, err := s.db(ctx).Exec(ctx, `
INSERT INTO one_time_codes (`+codeColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.UserID, c.CodeHash, c.Purpose.String(), c.Attempts, c.MaxAttempts, c.ExpiresAt, c.UsedAt, c.CreatedAt,
	)
	if pg.IsForeignKeyViolationError(err) {
		return errors.Join(ErrUnknownUser, err)
	}
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	return nil
}

func (s *Store) LatestActiveCodeForUpdate(ctx context.Context, userID uuid.UUID, purpose otpcode.Purpose) (*otpcode.Code, error) {
	rows, err := s.db(ctx).Query(ctx, `
SELECT `+codeColumns+`
FROM one_time_codes
WHERE user_id = $1 AND purpose = $2 AND used_at IS NULL
ORDER BY created_at DESC
LIMIT 1
FOR UPDATE`,
		userID, purpose.String(),
	)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[codeRow])
	if pg.IsNotFoundError(err) {
		return nil, otpcode.ErrNoActiveCode
	}
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return row.code(), nil
}

func (s *Store) UpdateCode(ctx context.Context, c otpcode.Code) error {
	tag, err := s.db(ctx).Exec(ctx,
		`UPDATE one_time_codes SET attempts = $2, used_at = $3 WHERE id = $1`,
		c.ID, c.Attempts, c.UsedAt,
	)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return otpcode.ErrNoActiveCode
	}
	return nil
}

func (s *Store) DeleteExpiredCodes(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.db(ctx).Exec(ctx, `DELETE FROM one_time_codes WHERE expires_at < $1`, before)
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}
	return tag.RowsAffected(), nil
}
