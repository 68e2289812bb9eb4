package twofactor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
)

// Profile is the part of a user record this package reads and writes.
type Profile struct {
	UserID uuid.UUID
	Email  string
	State  State
}

// ProfileStore persists two-factor state on the user record.
type ProfileStore interface {
	// GetProfile returns ErrUserNotFound for unknown users.
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	// GetProfileForUpdate is GetProfile with the row locked until the
	// surrounding transaction ends.
	GetProfileForUpdate(ctx context.Context, userID uuid.UUID) (*Profile, error)
	SaveState(ctx context.Context, userID uuid.UUID, state State) error
}

// Transactor runs fn in a transaction. Nested calls join the outer one.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cipher protects TOTP secrets and hashes recovery codes.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(blob string) (string, error)
	HashWithPepper(code string) string
	VerifyCode(code, storedHash string) bool
}

// CodeLedger issues and checks emailed one-time codes.
type CodeLedger interface {
	Issue(ctx context.Context, userID uuid.UUID, purpose otpcode.Purpose) (string, error)
	Verify(ctx context.Context, userID uuid.UUID, code string, purpose otpcode.Purpose) error
	Cleanup(ctx context.Context) (int64, error)
}

// DeviceRegistry tracks devices allowed to skip the challenge.
type DeviceRegistry interface {
	IsTrusted(ctx context.Context, userID uuid.UUID, fingerprint string) (bool, error)
	Trust(ctx context.Context, userID uuid.UUID, fingerprint string, info trusteddevice.Info) (*trusteddevice.Device, error)
	List(ctx context.Context, userID uuid.UUID) ([]trusteddevice.Device, error)
	Remove(ctx context.Context, userID, deviceID uuid.UUID) error
	RemoveAll(ctx context.Context, userID uuid.UUID) error
	Cleanup(ctx context.Context) (int64, error)
}

// Notification asks for a code to be delivered to the user.
type Notification struct {
	UserID    uuid.UUID
	Email     string
	Purpose   otpcode.Purpose
	Code      string
	ExpiresIn time.Duration
}

// Notifier delivers codes. Delivery is fire-and-forget: the manager does
// not wait for SendCode and only logs its error.
type Notifier interface {
	SendCode(ctx context.Context, n Notification) error
}

// PasswordChecker confirms the user's primary password.
type PasswordChecker interface {
	VerifyPassword(ctx context.Context, userID uuid.UUID, password string) error
}

// Dependencies are the collaborators a Manager needs.
type Dependencies struct {
	Profiles ProfileStore
	Tx       Transactor
	Cipher   Cipher
	Ledger   CodeLedger
	Devices  DeviceRegistry
}

// TOTPSetup is returned once when TOTP setup starts.
type TOTPSetup struct {
	Secret string // base32, for manual entry
	URI    string // otpauth:// provisioning URI
	QRCode string // PNG data URI of URI
}

// VerifyOptions controls device trust on a successful Verify2FA.
type VerifyOptions struct {
	TrustDevice bool
	Fingerprint string
	Device      trusteddevice.Info
}

// VerifyResult describes a successful second-factor check.
type VerifyResult struct {
	Method                 MethodKind
	UsedRecoveryCode       bool
	RemainingRecoveryCodes int
	TrustedDevice          *trusteddevice.Device
}

// Status is a read-only view of a user's two-factor state.
type Status struct {
	Enabled                bool
	Pending                bool
	Method                 MethodKind
	HasRecoveryCodes       bool
	RemainingRecoveryCodes int
}

// CleanupResult counts the rows removed by Cleanup.
type CleanupResult struct {
	Codes   int64
	Devices int64
}
