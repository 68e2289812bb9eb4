package otpcode

import "errors"

var (
	ErrNoActiveCode     = errors.New("no active code")
	ErrExpired          = errors.New("code expired")
	ErrTooManyAttempts  = errors.New("too many attempts")
	ErrInvalidCode      = errors.New("invalid code")
	ErrInvalidPurpose   = errors.New("invalid code purpose")
	ErrIssueRateLimited = errors.New("too many codes requested")
	ErrGenerateCode     = errors.New("failed to generate code")
	ErrStorage          = errors.New("code storage failed")
)
