package twofactor_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/memstore"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/password"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/totp"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/twofactor"
)

const (
	testEmail    = "user@example.com"
	testPassword = "correct horse battery staple"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type notifierMock struct {
	mock.Mock
}

func (n *notifierMock) SendCode(ctx context.Context, note twofactor.Notification) error {
	args := n.Called(ctx, note)
	return args.Error(0)
}

type env struct {
	m        *twofactor.Manager
	store    *memstore.Store
	cipher   *secrets.Cipher
	ledger   *otpcode.Ledger
	devices  *trusteddevice.Registry
	clock    *clock
	notifier *notifierMock
	userID   uuid.UUID
}

func newEnv(t *testing.T, opts ...twofactor.Option) *env {
	t.Helper()
	ctx := context.Background()

	cipher, err := secrets.New(secrets.Config{MasterKey: "twofactor-test-master-key"})
	require.NoError(t, err)

	store := memstore.New()
	hash, err := password.Hash(testPassword)
	require.NoError(t, err)
	userID, err := store.CreateUser(ctx, testEmail, hash)
	require.NoError(t, err)

	c := &clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	notifier := &notifierMock{}
	notifier.On("SendCode", mock.Anything, mock.Anything).Return(nil).Maybe()

	ledger := otpcode.NewLedger(store, store, cipher, otpcode.WithClock(c.Now))
	devices := trusteddevice.NewRegistry(store, trusteddevice.WithClock(c.Now))

	e := &env{
		store:    store,
		cipher:   cipher,
		ledger:   ledger,
		devices:  devices,
		clock:    c,
		notifier: notifier,
		userID:   userID,
	}
	e.m = e.newManager(t, devices, opts...)
	return e
}

// newManager builds another manager over the same store, clock and notifier.
func (e *env) newManager(t *testing.T, devices twofactor.DeviceRegistry, opts ...twofactor.Option) *twofactor.Manager {
	t.Helper()

	opts = append([]twofactor.Option{
		twofactor.WithClock(e.clock.Now),
		twofactor.WithNotifier(e.notifier),
	}, opts...)

	m, err := twofactor.NewManager(
		twofactor.Config{Issuer: "OpenEOS", QRSize: 128},
		twofactor.Dependencies{
			Profiles: e.store,
			Tx:       e.store,
			Cipher:   e.cipher,
			Ledger:   e.ledger,
			Devices:  devices,
		},
		opts...,
	)
	require.NoError(t, err)
	return m
}

// lastNotification waits for pending deliveries and returns the newest one.
func (e *env) lastNotification(t *testing.T) twofactor.Notification {
	t.Helper()
	e.m.Wait()

	calls := e.notifier.Calls
	require.NotEmpty(t, calls, "no code was delivered")
	note, ok := calls[len(calls)-1].Arguments.Get(1).(twofactor.Notification)
	require.True(t, ok)
	return note
}

// enableTOTP runs the full TOTP setup and returns the secret and recovery codes.
func (e *env) enableTOTP(t *testing.T) (string, []string) {
	t.Helper()
	ctx := context.Background()

	setup, err := e.m.SetupTOTP(ctx, e.userID)
	require.NoError(t, err)
	code, err := totp.GenerateCodeAt(setup.Secret, e.clock.Now())
	require.NoError(t, err)
	codes, err := e.m.VerifyTOTPSetup(ctx, e.userID, code)
	require.NoError(t, err)
	return setup.Secret, codes
}

// enableEmail runs the full email setup and returns the recovery codes.
func (e *env) enableEmail(t *testing.T) []string {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, e.m.SetupEmailOTP(ctx, e.userID))
	codes, err := e.m.VerifyEmailOTPSetup(ctx, e.userID, e.lastNotification(t).Code)
	require.NoError(t, err)
	return codes
}

func (e *env) totpCode(t *testing.T, secret string) string {
	t.Helper()
	code, err := totp.GenerateCodeAt(secret, e.clock.Now())
	require.NoError(t, err)
	return code
}

// invalidTOTP returns a six-digit code the secret does not accept right now.
func (e *env) invalidTOTP(t *testing.T, secret string) string {
	t.Helper()
	for i := range 10 {
		candidate := fmt.Sprintf("%06d", i*111111)
		ok, err := totp.ValidateAt(secret, candidate, e.clock.Now())
		require.NoError(t, err)
		if !ok {
			return candidate
		}
	}
	t.Fatal("no invalid code found")
	return ""
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}
