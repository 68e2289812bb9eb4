// Package totp generates and validates RFC 6238 time-based one-time
// passwords for authenticator apps.
//
// Parameters are fixed to what every mainstream authenticator supports:
// HMAC-SHA1, 30-second steps, 6 digits, and one step of clock drift accepted
// on either side of the current step. The heavy lifting is done by
// github.com/pquerna/otp; this package pins the parameters and maps its
// errors.
//
// # Usage
//
//	key, err := totp.GenerateKey(totp.KeyParams{
//	    Issuer:      "OpenEOS",
//	    AccountName: "user@example.com",
//	})
//	// show key.URI as a QR code and key.Secret for manual entry
//
//	ok, err := totp.ValidateAt(key.Secret, "123456", time.Now())
//
// Secrets are plaintext here; callers encrypt them before persisting.
package totp
