package twofactor

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/qrcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/totp"
)

// SetupTOTP starts TOTP setup with a fresh secret. Calling it again before
// confirmation replaces the pending secret. The secret is returned once for
// manual entry together with its provisioning URI and QR code.
func (m *Manager) SetupTOTP(ctx context.Context, userID uuid.UUID) (*TOTPSetup, error) {
	var setup *TOTPSetup
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := m.profiles.GetProfileForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if _, ok := p.State.(Enabled); ok {
			return ErrAlreadyEnabled
		}

		key, err := totp.GenerateKey(totp.KeyParams{Issuer: m.cfg.Issuer, AccountName: accountName(p)})
		if err != nil {
			return err
		}
		qr, err := qrcode.DataURI(key.URI, m.cfg.QRSize)
		if err != nil {
			return err
		}
		encrypted, err := m.cipher.Encrypt(key.Secret)
		if err != nil {
			return err
		}

		if err := m.profiles.SaveState(ctx, userID, PendingSetup{Method: TOTP{EncryptedSecret: encrypted}}); err != nil {
			return err
		}
		setup = &TOTPSetup{Secret: key.Secret, URI: key.URI, QRCode: qr}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "two-factor setup started", logger.UserID(userID), logger.Method(string(MethodTOTP)))
	return setup, nil
}

// VerifyTOTPSetup confirms a pending TOTP setup with a code from the
// authenticator. On success two-factor is enabled and the plaintext recovery
// codes are returned; they cannot be retrieved again.
func (m *Manager) VerifyTOTPSetup(ctx context.Context, userID uuid.UUID, token string) ([]string, error) {
	var codes []string
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := m.profiles.GetProfileForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		var method TOTP
		switch s := p.State.(type) {
		case Enabled:
			return ErrAlreadyEnabled
		case PendingSetup:
			t, ok := s.Method.(TOTP)
			if !ok {
				return ErrNoPendingSetup
			}
			method = t
		default:
			return ErrNoPendingSetup
		}

		secret, err := m.cipher.Decrypt(method.EncryptedSecret)
		if err != nil {
			m.logger.ErrorContext(ctx, "stored totp secret failed to decrypt", logger.UserID(userID), logger.Error(err))
			return err
		}
		ok, err := totp.ValidateAt(secret, token, m.now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidCode
		}

		plain, hashes, err := m.newRecoveryCodes()
		if err != nil {
			return err
		}
		if err := m.profiles.SaveState(ctx, userID, Enabled{Method: method, RecoveryHashes: hashes}); err != nil {
			return err
		}
		codes = plain
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "two-factor enabled", logger.UserID(userID), logger.Method(string(MethodTOTP)))
	return codes, nil
}

// SetupEmailOTP starts email setup and sends a confirmation code.
func (m *Manager) SetupEmailOTP(ctx context.Context, userID uuid.UUID) error {
	var (
		email string
		code  string
	)
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := m.profiles.GetProfileForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if _, ok := p.State.(Enabled); ok {
			return ErrAlreadyEnabled
		}

		if err := m.profiles.SaveState(ctx, userID, PendingSetup{Method: Email{}}); err != nil {
			return err
		}
		code, err = m.ledger.Issue(ctx, userID, otpcode.PurposeTwoFactorSetup)
		if err != nil {
			return err
		}
		email = p.Email
		return nil
	})
	if err != nil {
		return err
	}

	m.deliver(ctx, userID, email, otpcode.PurposeTwoFactorSetup, code)
	m.logger.InfoContext(ctx, "two-factor setup started", logger.UserID(userID), logger.Method(string(MethodEmail)))
	return nil
}

// VerifyEmailOTPSetup confirms a pending email setup. Ledger failures
// (ErrInvalidCode, ErrExpired, ErrTooManyAttempts, ErrNoActiveCode) are
// returned as they are.
func (m *Manager) VerifyEmailOTPSetup(ctx context.Context, userID uuid.UUID, code string) ([]string, error) {
	var (
		codes    []string
		rejected error
	)
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := m.profiles.GetProfileForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		switch s := p.State.(type) {
		case Enabled:
			return ErrAlreadyEnabled
		case PendingSetup:
			if _, ok := s.Method.(Email); !ok {
				return ErrNoPendingSetup
			}
		default:
			return ErrNoPendingSetup
		}

		if err := m.ledger.Verify(ctx, userID, strings.TrimSpace(code), otpcode.PurposeTwoFactorSetup); err != nil {
			if isRejection(err) {
				// Commit so the failed attempt counts.
				rejected = err
				return nil
			}
			return err
		}

		plain, hashes, err := m.newRecoveryCodes()
		if err != nil {
			return err
		}
		if err := m.profiles.SaveState(ctx, userID, Enabled{Method: Email{}, RecoveryHashes: hashes}); err != nil {
			return err
		}
		codes = plain
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return nil, rejected
	}

	m.logger.InfoContext(ctx, "two-factor enabled", logger.UserID(userID), logger.Method(string(MethodEmail)))
	return codes, nil
}
