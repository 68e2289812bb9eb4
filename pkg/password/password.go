package password

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
)

// HashStore reads a user's stored bcrypt hash.
type HashStore interface {
	// GetPasswordHash returns ErrUserNotFound for unknown users and
	// ErrNoPassword for accounts without a password.
	GetPasswordHash(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// Verifier checks a user's primary password.
type Verifier struct {
	store  HashStore
	logger *slog.Logger
}

type Option func(*Verifier)

func WithLogger(l *slog.Logger) Option {
	return func(v *Verifier) {
		if l != nil {
			v.logger = l
		}
	}
}

func NewVerifier(store HashStore, opts ...Option) *Verifier {
	v := &Verifier{store: store, logger: logger.Discard()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyPassword returns nil if password matches the stored hash and
// ErrInvalidPassword otherwise.
func (v *Verifier) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	hash, err := v.store.GetPasswordHash(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoPassword) {
			return ErrInvalidPassword
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			v.logger.ErrorContext(ctx, "stored password hash is unusable",
				logger.Component("password"),
				logger.UserID(userID),
				logger.Error(err),
			)
		}
		return ErrInvalidPassword
	}
	return nil
}

// Hash returns a bcrypt hash of password at the default cost.
func Hash(password string) ([]byte, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Join(ErrHashFailed, err)
	}
	return h, nil
}
