package totp

import "errors"

var (
	ErrFailedToGenerateSecretKey = errors.New("failed to generate TOTP secret key")
	ErrFailedToValidateTOTP      = errors.New("failed to validate TOTP")
	ErrFailedToGenerateTOTP      = errors.New("failed to generate TOTP")
	ErrMissingSecret             = errors.New("missing secret")
	ErrInvalidSecret             = errors.New("invalid secret")
	ErrMissingAccountName        = errors.New("missing account name")
	ErrMissingIssuer             = errors.New("missing issuer")
)
