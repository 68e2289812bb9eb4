package twofactor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/recovery"
)

// Manager runs the two-factor lifecycle for users: setup, confirmation,
// login-time verification, recovery codes, trusted devices and disabling.
// It is safe for concurrent use.
type Manager struct {
	cfg       Config
	profiles  ProfileStore
	tx        Transactor
	cipher    Cipher
	ledger    CodeLedger
	devices   DeviceRegistry
	notifier  Notifier
	passwords PasswordChecker
	now       func() time.Time
	codeTTL   time.Duration
	logger    *slog.Logger

	inflight sync.WaitGroup
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithNotifier sets where emailed codes are sent. Without one, codes are
// issued but never delivered, and a warning is logged.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithPasswordChecker makes Disable2FA verify the password itself instead
// of trusting the caller to have done so.
func WithPasswordChecker(p PasswordChecker) Option {
	return func(m *Manager) { m.passwords = p }
}

// WithCodeTTL is the lifetime reported to the notifier. It should match the
// ledger's TTL.
func WithCodeTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.codeTTL = ttl
		}
	}
}

func NewManager(cfg Config, deps Dependencies, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Profiles == nil || deps.Tx == nil || deps.Cipher == nil || deps.Ledger == nil || deps.Devices == nil {
		return nil, ErrMissingDependency
	}

	m := &Manager{
		cfg:      cfg,
		profiles: deps.Profiles,
		tx:       deps.Tx,
		cipher:   deps.Cipher,
		ledger:   deps.Ledger,
		devices:  deps.Devices,
		now:      time.Now,
		codeTTL:  otpcode.DefaultTTL,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(logger.Component("twofactor"))
	return m, nil
}

// Wait blocks until every pending code delivery has finished.
func (m *Manager) Wait() {
	m.inflight.Wait()
}

// newRecoveryCodes returns plaintext codes for the user and the hashes to store.
func (m *Manager) newRecoveryCodes() ([]string, []string, error) {
	codes, err := recovery.Generate()
	if err != nil {
		return nil, nil, errors.Join(ErrGenerateRecoveries, err)
	}
	return codes, recovery.HashAll(m.cipher, codes), nil
}

// deliver hands the code to the notifier without waiting for it. The send
// outlives the caller's context cancellation.
func (m *Manager) deliver(ctx context.Context, userID uuid.UUID, email string, purpose otpcode.Purpose, code string) {
	if m.notifier == nil {
		m.logger.WarnContext(ctx, "no notifier configured, one-time code not delivered",
			logger.UserID(userID),
			logger.Purpose(purpose.String()),
		)
		return
	}

	n := Notification{
		UserID:    userID,
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresIn: m.codeTTL,
	}
	ctx = context.WithoutCancel(ctx)

	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		if err := m.notifier.SendCode(ctx, n); err != nil {
			m.logger.ErrorContext(ctx, "failed to deliver one-time code",
				logger.UserID(userID),
				logger.Purpose(purpose.String()),
				logger.Error(err),
			)
		}
	}()
}

// accountName labels the TOTP entry in authenticator apps.
func accountName(p *Profile) string {
	if p.Email != "" {
		return p.Email
	}
	return p.UserID.String()
}

func isSixDigits(code string) bool {
	if len(code) != otpcode.CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
