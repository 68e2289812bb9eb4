package twofactor

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
)

// Disable2FA turns two-factor off, also abandoning a pending setup. The
// method, secret and recovery codes are cleared and every trusted device is
// forgotten in one transaction.
//
// The password is checked only when a PasswordChecker is configured;
// otherwise the caller must have checked it.
func (m *Manager) Disable2FA(ctx context.Context, userID uuid.UUID, password string) error {
	if m.passwords != nil {
		if err := m.passwords.VerifyPassword(ctx, userID, password); err != nil {
			return err
		}
	}

	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := m.profiles.GetProfileForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if _, ok := p.State.(Disabled); ok {
			return ErrNotEnabled
		}
		if err := m.profiles.SaveState(ctx, userID, Disabled{}); err != nil {
			return err
		}
		return m.devices.RemoveAll(ctx, userID)
	})
	if err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "two-factor disabled", logger.UserID(userID))
	return nil
}

// Status reports the user's current two-factor state.
func (m *Manager) Status(ctx context.Context, userID uuid.UUID) (*Status, error) {
	p, err := m.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch s := p.State.(type) {
	case Enabled:
		return &Status{
			Enabled:                true,
			Method:                 s.Method.Kind(),
			HasRecoveryCodes:       len(s.RecoveryHashes) > 0,
			RemainingRecoveryCodes: len(s.RecoveryHashes),
		}, nil
	case PendingSetup:
		return &Status{Pending: true, Method: s.Method.Kind()}, nil
	default:
		return &Status{Method: MethodNone}, nil
	}
}

// RegenerateRecoveryCodes replaces the whole recovery set; every earlier
// code stops working, used or not.
func (m *Manager) RegenerateRecoveryCodes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var codes []string
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := m.profiles.GetProfileForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		en, ok := p.State.(Enabled)
		if !ok {
			return ErrNotEnabled
		}

		plain, hashes, err := m.newRecoveryCodes()
		if err != nil {
			return err
		}
		if err := m.profiles.SaveState(ctx, userID, Enabled{Method: en.Method, RecoveryHashes: hashes}); err != nil {
			return err
		}
		codes = plain
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "recovery codes regenerated", logger.UserID(userID))
	return codes, nil
}

// TrustedDevices lists the user's trusted devices, most recently used first.
func (m *Manager) TrustedDevices(ctx context.Context, userID uuid.UUID) ([]trusteddevice.Device, error) {
	return m.devices.List(ctx, userID)
}

// RemoveTrustedDevice revokes one device. Returns ErrDeviceNotFound if it
// does not belong to the user.
func (m *Manager) RemoveTrustedDevice(ctx context.Context, userID, deviceID uuid.UUID) error {
	if err := m.devices.Remove(ctx, userID, deviceID); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "trusted device removed", logger.UserID(userID), logger.DeviceID(deviceID))
	return nil
}

// Cleanup deletes expired one-time codes and trusted devices. It only
// touches rows that can no longer verify, so it is safe to run at any time
// and any number of times.
func (m *Manager) Cleanup(ctx context.Context) (*CleanupResult, error) {
	var res CleanupResult

	codes, codesErr := m.ledger.Cleanup(ctx)
	res.Codes = codes
	devices, devicesErr := m.devices.Cleanup(ctx)
	res.Devices = devices

	if err := errors.Join(codesErr, devicesErr); err != nil {
		m.logger.ErrorContext(ctx, "cleanup failed", logger.Error(err))
		return &res, err
	}

	m.logger.InfoContext(ctx, "expired two-factor data removed",
		logger.Group("deleted",
			slog.Int64("codes", res.Codes),
			slog.Int64("devices", res.Devices),
		),
	)
	return &res, nil
}
