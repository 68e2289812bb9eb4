package otpcode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
)

// Ledger issues and verifies short numeric codes delivered out of band.
// At most one code per (user, purpose) is active at a time.
type Ledger struct {
	store       Store
	tx          Transactor
	hasher      Hasher
	limiter     Limiter
	now         func() time.Time
	ttl         time.Duration
	maxAttempts int
	logger      *slog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(l *Ledger) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

func WithMaxAttempts(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.maxAttempts = n
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.logger = log
		}
	}
}

// WithIssueLimiter throttles Issue per (user, purpose).
func WithIssueLimiter(lim Limiter) Option {
	return func(l *Ledger) { l.limiter = lim }
}

func NewLedger(store Store, tx Transactor, hasher Hasher, opts ...Option) *Ledger {
	l := &Ledger{
		store:       store,
		tx:          tx,
		hasher:      hasher,
		now:         time.Now,
		ttl:         DefaultTTL,
		maxAttempts: DefaultMaxAttempts,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Issue supersedes every active code for the pair and stores a new one.
// The plaintext code is returned for delivery and is not kept anywhere.
func (l *Ledger) Issue(ctx context.Context, userID uuid.UUID, purpose Purpose) (string, error) {
	if !purpose.Valid() {
		return "", ErrInvalidPurpose
	}

	if l.limiter != nil {
		res, err := l.limiter.Allow(ctx, issueKey(userID, purpose))
		if err != nil {
			return "", errors.Join(ErrStorage, err)
		}
		if !res.Allowed() {
			l.logger.WarnContext(ctx, "one-time code issuance throttled",
				logger.Component("otpcode"),
				logger.UserID(userID),
				logger.Purpose(purpose.String()),
			)
			return "", ErrIssueRateLimited
		}
	}

	code, err := generateCode(CodeLength)
	if err != nil {
		return "", err
	}

	now := l.now()
	record := Code{
		ID:          uuid.New(),
		UserID:      userID,
		CodeHash:    l.hasher.HashWithPepper(code),
		Purpose:     purpose,
		MaxAttempts: l.maxAttempts,
		ExpiresAt:   now.Add(l.ttl),
		CreatedAt:   now,
	}

	err = l.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := l.store.InvalidateActiveCodes(ctx, userID, purpose, now); err != nil {
			return err
		}
		return l.store.CreateCode(ctx, record)
	})
	if err != nil {
		return "", errors.Join(ErrStorage, err)
	}

	l.logger.DebugContext(ctx, "one-time code issued",
		logger.Component("otpcode"),
		logger.UserID(userID),
		logger.Purpose(purpose.String()),
	)
	return code, nil
}

// Verify checks code against the newest active code for the pair.
//
// A mismatch consumes an attempt, and the increment is committed even though
// Verify reports an error. The mismatch that uses up the last attempt
// returns ErrTooManyAttempts; once there, the code stays locked regardless
// of input until a new one is issued.
//
// A superseded code is just a wrong guess against its replacement: it returns
// ErrInvalidCode and spends one of the new code's attempts.
func (l *Ledger) Verify(ctx context.Context, userID uuid.UUID, code string, purpose Purpose) error {
	if !purpose.Valid() {
		return ErrInvalidPurpose
	}

	var result error
	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := l.store.LatestActiveCodeForUpdate(ctx, userID, purpose)
		if errors.Is(err, ErrNoActiveCode) {
			result = ErrNoActiveCode
			return nil
		}
		if err != nil {
			return err
		}

		now := l.now()
		switch {
		case now.After(c.ExpiresAt):
			result = ErrExpired
			return nil
		case c.Attempts >= c.MaxAttempts:
			result = ErrTooManyAttempts
			return nil
		}

		if !l.hasher.VerifyCode(code, c.CodeHash) {
			c.Attempts++
			if err := l.store.UpdateCode(ctx, *c); err != nil {
				return err
			}
			result = ErrInvalidCode
			if c.Attempts >= c.MaxAttempts {
				result = ErrTooManyAttempts
			}
			return nil
		}

		c.UsedAt = &now
		return l.store.UpdateCode(ctx, *c)
	})
	if err != nil {
		return errors.Join(ErrStorage, err)
	}

	if result != nil {
		l.logger.DebugContext(ctx, "one-time code rejected",
			logger.Component("otpcode"),
			logger.UserID(userID),
			logger.Purpose(purpose.String()),
			logger.Reason(result),
		)
	}
	return result
}

// Cleanup deletes codes whose expiry has passed. Used codes that have not
// expired yet are kept for audit until they do.
func (l *Ledger) Cleanup(ctx context.Context) (int64, error) {
	n, err := l.store.DeleteExpiredCodes(ctx, l.now())
	if err != nil {
		return 0, errors.Join(ErrStorage, err)
	}
	return n, nil
}

// generateCode draws every digit independently and uniformly.
func generateCode(length int) (string, error) {
	ten := big.NewInt(10)
	buf := make([]byte, length)
	for i := range buf {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", errors.Join(ErrGenerateCode, err)
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}

func issueKey(userID uuid.UUID, purpose Purpose) string {
	return fmt.Sprintf("otp:%s:%s", userID, purpose)
}
