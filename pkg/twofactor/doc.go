// Package twofactor manages second-factor authentication for user accounts.
//
// A user is in one of three states: Disabled, PendingSetup (a method was
// chosen but not yet confirmed) or Enabled. Two methods are supported: TOTP
// with an authenticator app and one-time codes sent by email. Enabling
// either method issues ten single-use recovery codes, which are shown once
// and stored only as peppered hashes.
//
// # Setup
//
//	setup, err := m.SetupTOTP(ctx, userID)      // show setup.QRCode
//	codes, err := m.VerifyTOTPSetup(ctx, userID, input)
//
//	err := m.SetupEmailOTP(ctx, userID)         // code is emailed
//	codes, err := m.VerifyEmailOTPSetup(ctx, userID, input)
//
// # Login
//
//	required, err := m.RequiresChallenge(ctx, userID, fingerprint)
//	if required {
//		_ = m.SendLoginOTP(ctx, userID) // email users only
//		res, err := m.Verify2FA(ctx, userID, input, twofactor.VerifyOptions{
//			TrustDevice: remember,
//			Fingerprint: fingerprint,
//			Device:      trusteddevice.InfoFromRequest(r),
//		})
//	}
//
// Verify2FA accepts either the method's code or a recovery code and reports
// every wrong code as ErrInvalidCode. A trusted device skips the challenge
// for 30 days.
//
// # Consistency
//
// Every state change runs in one transaction with the user's row locked.
// Failed emailed-code attempts are committed even though the call fails.
// Disable2FA clears the method, secret and recovery codes and removes all
// trusted devices atomically.
//
// Codes are delivered by a Notifier in the background; call Wait before
// shutdown to let pending deliveries finish.
package twofactor
