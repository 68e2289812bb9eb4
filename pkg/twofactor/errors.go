package twofactor

import (
	"errors"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
)

var (
	ErrAlreadyEnabled     = errors.New("two-factor authentication is already enabled")
	ErrNotEnabled         = errors.New("two-factor authentication is not enabled")
	ErrNoPendingSetup     = errors.New("no pending two-factor setup")
	ErrUserNotFound       = errors.New("user not found")
	ErrCorruptProfile     = errors.New("stored two-factor state is inconsistent")
	ErrUnsupportedMethod  = errors.New("unsupported two-factor method")
	ErrMissingDependency  = errors.New("missing two-factor dependency")
	ErrMissingIssuer      = errors.New("two-factor issuer is not configured")
	ErrGenerateRecoveries = errors.New("failed to generate recovery codes")
)

// Errors from collaborating packages, re-exported so callers can match
// against a single package.
var (
	ErrInvalidCode        = otpcode.ErrInvalidCode
	ErrExpired            = otpcode.ErrExpired
	ErrTooManyAttempts    = otpcode.ErrTooManyAttempts
	ErrNoActiveCode       = otpcode.ErrNoActiveCode
	ErrIssueRateLimited   = otpcode.ErrIssueRateLimited
	ErrDecryptionFailed   = secrets.ErrDecryptionFailed
	ErrDeviceNotFound     = trusteddevice.ErrNotFound
	ErrMissingFingerprint = trusteddevice.ErrMissingFingerprint
)

// isRejection reports whether err means "the code was wrong" as opposed to
// an infrastructure or integrity failure.
func isRejection(err error) bool {
	return errors.Is(err, otpcode.ErrInvalidCode) ||
		errors.Is(err, otpcode.ErrExpired) ||
		errors.Is(err, otpcode.ErrTooManyAttempts) ||
		errors.Is(err, otpcode.ErrNoActiveCode)
}
