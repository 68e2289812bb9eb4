package otpcode

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/ratelimiter"
)

// Purpose scopes a code to one flow; a code issued for one purpose never
// verifies for another.
type Purpose string

const (
	PurposeTwoFactorSetup Purpose = "two_factor_setup"
	PurposeTwoFactorLogin Purpose = "two_factor_login"
	PurposeEmailChange    Purpose = "email_change"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeTwoFactorSetup, PurposeTwoFactorLogin, PurposeEmailChange:
		return true
	}
	return false
}

func (p Purpose) String() string { return string(p) }

const (
	CodeLength         = 6
	DefaultTTL         = 5 * time.Minute
	DefaultMaxAttempts = 3
)

// Code is a stored one-time code. The plaintext is never persisted.
type Code struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CodeHash    string
	Purpose     Purpose
	Attempts    int
	MaxAttempts int
	ExpiresAt   time.Time
	UsedAt      *time.Time
	CreatedAt   time.Time
}

// Active reports whether the code has not been used.
func (c Code) Active() bool { return c.UsedAt == nil }

// Store persists codes.
type Store interface {
	// InvalidateActiveCodes stamps used_at on every unused code for the pair.
	InvalidateActiveCodes(ctx context.Context, userID uuid.UUID, purpose Purpose, at time.Time) error
	CreateCode(ctx context.Context, code Code) error
	// LatestActiveCodeForUpdate returns the newest unused code for the pair,
	// locking it for the rest of the transaction. Returns ErrNoActiveCode
	// if there is none.
	LatestActiveCodeForUpdate(ctx context.Context, userID uuid.UUID, purpose Purpose) (*Code, error)
	// UpdateCode writes back attempts and used_at.
	UpdateCode(ctx context.Context, code Code) error
	DeleteExpiredCodes(ctx context.Context, before time.Time) (int64, error)
}

// Transactor runs fn in a transaction. Store calls made with the ctx passed
// to fn take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Hasher hashes codes with a server-side pepper and compares them in
// constant time.
type Hasher interface {
	HashWithPepper(code string) string
	VerifyCode(code, storedHash string) bool
}

// Limiter throttles issuance per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (*ratelimiter.Result, error)
}
