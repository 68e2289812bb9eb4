package pgstore

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations holds the schema for users, one-time codes and trusted
// devices, rooted so it can be passed to pg.Migrate as is.
var Migrations = mustSub(migrations, "migrations")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Store implements every storage interface of the two-factor packages on
// PostgreSQL. Every query goes through the transaction in ctx, if any.
type Store struct {
	tx *pg.Transactor
}

func New(tx *pg.Transactor) *Store {
	return &Store{tx: tx}
}

// WithinTx delegates to the underlying transactor, so the Store itself can
// be passed wherever a Transactor is needed.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.tx.WithinTx(ctx, fn)
}

func (s *Store) db(ctx context.Context) pg.DBTX {
	return s.tx.Conn(ctx)
}

// CreateUser inserts a user with two-factor disabled.
func (s *Store) CreateUser(ctx context.Context, email string, passwordHash []byte) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db(ctx).Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		id, strings.ToLower(strings.TrimSpace(email)), passwordHash,
	)
	if pg.IsDuplicateKeyError(err) {
		return uuid.Nil, ErrDuplicateEmail
	}
	if err != nil {
		return uuid.Nil, errors.Join(ErrQuery, err)
	}
	return id, nil
}
