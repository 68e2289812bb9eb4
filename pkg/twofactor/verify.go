package twofactor

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/recovery"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/totp"
)

// Verify2FA checks a login-time code. The configured method is tried first,
// then the code is tried as a recovery code. Any wrong code is reported as
// ErrInvalidCode, whatever the underlying reason, so callers cannot tell
// which check failed. A stored secret that fails to decrypt is reported as
// ErrDecryptionFailed unless a recovery code gets the user in.
//
// On success with opts.TrustDevice and a fingerprint, the device is trusted.
func (m *Manager) Verify2FA(ctx context.Context, userID uuid.UUID, code string, opts VerifyOptions) (*VerifyResult, error) {
	code = strings.TrimSpace(code)

	var (
		res      *VerifyResult
		rejected error
	)
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := m.profiles.GetProfileForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		en, ok := p.State.(Enabled)
		if !ok {
			rejected = ErrNotEnabled
			return nil
		}

		res = &VerifyResult{Method: en.Method.Kind(), RemainingRecoveryCodes: len(en.RecoveryHashes)}

		primaryErr := m.verifyPrimary(ctx, userID, en.Method, code)
		if primaryErr != nil && !isRejection(primaryErr) && !errors.Is(primaryErr, secrets.ErrDecryptionFailed) {
			return primaryErr
		}

		if primaryErr != nil {
			matched, remaining := recovery.VerifyAndConsume(m.cipher, en.RecoveryHashes, code)
			if !matched {
				m.logger.DebugContext(ctx, "second factor rejected",
					logger.UserID(userID),
					logger.Method(string(en.Method.Kind())),
					logger.Reason(primaryErr),
					logger.Group("recovery", logger.Reason(recovery.ErrNoMatch)),
				)
				if errors.Is(primaryErr, secrets.ErrDecryptionFailed) {
					return primaryErr
				}
				// Commit: an emailed code's failed attempt must count.
				rejected = ErrInvalidCode
				return nil
			}

			if err := m.profiles.SaveState(ctx, userID, Enabled{Method: en.Method, RecoveryHashes: remaining}); err != nil {
				return err
			}
			res.UsedRecoveryCode = true
			res.RemainingRecoveryCodes = len(remaining)
		}

		if opts.TrustDevice && strings.TrimSpace(opts.Fingerprint) != "" {
			d, err := m.devices.Trust(ctx, userID, opts.Fingerprint, opts.Device)
			if err != nil {
				return err
			}
			res.TrustedDevice = d
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, secrets.ErrDecryptionFailed) {
			m.logger.ErrorContext(ctx, "stored totp secret failed to decrypt", logger.UserID(userID), logger.Error(err))
		}
		return nil, err
	}
	if rejected != nil {
		return nil, rejected
	}

	m.logger.InfoContext(ctx, "second factor verified",
		logger.UserID(userID),
		logger.Method(string(res.Method)),
		logger.Event(verifiedEvent(res)),
	)
	return res, nil
}

func verifiedEvent(res *VerifyResult) string {
	if res.UsedRecoveryCode {
		return "recovery_code"
	}
	return "primary"
}

// verifyPrimary checks code against the configured method. Input that
// cannot be a six-digit code is rejected up front so a recovery code does
// not burn an emailed code's attempt.
func (m *Manager) verifyPrimary(ctx context.Context, userID uuid.UUID, method Method, code string) error {
	switch mt := method.(type) {
	case TOTP:
		if !isSixDigits(code) {
			return ErrInvalidCode
		}
		secret, err := m.cipher.Decrypt(mt.EncryptedSecret)
		if err != nil {
			return err
		}
		ok, err := totp.ValidateAt(secret, code, m.now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidCode
		}
		return nil
	case Email:
		if !isSixDigits(code) {
			return ErrInvalidCode
		}
		return m.ledger.Verify(ctx, userID, code, otpcode.PurposeTwoFactorLogin)
	default:
		return ErrUnsupportedMethod
	}
}

// SendLoginOTP emails a login code to a user whose method is Email.
func (m *Manager) SendLoginOTP(ctx context.Context, userID uuid.UUID) error {
	p, err := m.profiles.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	en, ok := p.State.(Enabled)
	if !ok {
		return ErrNotEnabled
	}
	if _, ok := en.Method.(Email); !ok {
		return ErrNotEnabled
	}

	code, err := m.ledger.Issue(ctx, userID, otpcode.PurposeTwoFactorLogin)
	if err != nil {
		return err
	}
	m.deliver(ctx, userID, p.Email, otpcode.PurposeTwoFactorLogin, code)
	return nil
}

// RequiresChallenge reports whether a login must be asked for a second
// factor: false when two-factor is off or the device is trusted.
func (m *Manager) RequiresChallenge(ctx context.Context, userID uuid.UUID, fingerprint string) (bool, error) {
	p, err := m.profiles.GetProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	if _, ok := p.State.(Enabled); !ok {
		return false, nil
	}

	trusted, err := m.devices.IsTrusted(ctx, userID, fingerprint)
	if err != nil {
		return false, err
	}
	return !trusted, nil
}
