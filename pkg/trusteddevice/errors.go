package trusteddevice

import "errors"

var (
	ErrNotFound           = errors.New("trusted device not found")
	ErrMissingFingerprint = errors.New("device fingerprint is required")
	ErrStorage            = errors.New("trusted device storage failed")
)
