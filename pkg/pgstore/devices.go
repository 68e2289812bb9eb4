package pgstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pg"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
)

const deviceColumns = `id, user_id, fingerprint, name, browser, os, ip_address, last_used_at, expires_at, created_at`

type deviceRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Fingerprint string    `db:"fingerprint"`
	Name        string    `db:"name"`
	Browser     string    `db:"browser"`
	OS          string    `db:"os"`
	IPAddress   string    `db:"ip_address"`
	LastUsedAt  time.Time `db:"last_used_at"`
	ExpiresAt   time.Time `db:"expires_at"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r deviceRow) device() trusteddevice.Device {
	return trusteddevice.Device{
		ID:          r.ID,
		UserID:      r.UserID,
		Fingerprint: r.Fingerprint,
		Name:        r.Name,
		Browser:     r.Browser,
		OS:          r.OS,
		IPAddress:   r.IPAddress,
		LastUsedAt:  r.LastUsedAt.UTC(),
		ExpiresAt:   r.ExpiresAt.UTC(),
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func (s *Store) oneDevice(ctx context.Context, query string, args ...any) (*trusteddevice.Device, error) {
	rows, err := s.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[deviceRow])
	switch {
	case pg.IsNotFoundError(err):
		return nil, trusteddevice.ErrNotFound
	case pg.IsForeignKeyViolationError(err):
		return nil, errors.Join(ErrUnknownUser, err)
	}
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	d := row.device()
	return &d, nil
}

func (s *Store) GetDevice(ctx context.Context, userID uuid.UUID, fingerprint string) (*trusteddevice.Device, error) {
	return s.oneDevice(ctx,
		`SELECT `+deviceColumns+` FROM trusted_devices WHERE user_id = $1 AND fingerprint = $2`,
		userID, fingerprint,
	)
}

func (s *Store) UpsertDevice(ctx context.Context, d trusteddevice.Device) (*trusteddevice.Device, error) {
	return s.oneDevice(ctx, `
INSERT INTO trusted_devices (`+deviceColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id, fingerprint) DO UPDATE
SET name         = EXCLUDED.name,
    browser      = EXCLUDED.browser,
    os           = EXCLUDED.os,
    ip_address   = EXCLUDED.ip_address,
    last_used_at = EXCLUDED.last_used_at,
    expires_at   = EXCLUDED.expires_at
RETURNING `+deviceColumns,
		d.ID, d.UserID, d.Fingerprint, d.Name, d.Browser, d.OS, d.IPAddress, d.LastUsedAt, d.ExpiresAt, d.CreatedAt,
	)
}

func (s *Store) TouchDevice(ctx context.Context, id uuid.UUID, lastUsedAt time.Time) error {
	tag, err := s.db(ctx).Exec(ctx, `UPDATE trusted_devices SET last_used_at = $2 WHERE id = $1`, id, lastUsedAt)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return trusteddevice.ErrNotFound
	}
	return nil
}

func (s *Store) ListDevices(ctx context.Context, userID uuid.UUID) ([]trusteddevice.Device, error) {
	rows, err := s.db(ctx).Query(ctx,
		`SELECT `+deviceColumns+` FROM trusted_devices WHERE user_id = $1 ORDER BY last_used_at DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (trusteddevice.Device, error) {
		r, err := pgx.RowToStructByName[deviceRow](row)
		return r.device(), err
	})
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	if list == nil {
		list = []trusteddevice.Device{}
	}
	return list, nil
}

func (s *Store) DeleteDevice(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.db(ctx).Exec(ctx, `DELETE FROM trusted_devices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return trusteddevice.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUserDevices(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := s.db(ctx).Exec(ctx, `DELETE FROM trusted_devices WHERE user_id = $1`, userID)
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) DeleteExpiredDevices(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.db(ctx).Exec(ctx, `DELETE FROM trusted_devices WHERE expires_at < $1`, before)
	if err != nil {
		return 0, errors.Join(ErrQuery, err)
	}
	return tag.RowsAffected(), nil
}
