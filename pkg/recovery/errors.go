package recovery

import "errors"

var (
	ErrGenerateFailed = errors.New("failed to generate recovery codes")
	// ErrNoMatch is reported by callers when VerifyAndConsume finds nothing.
	ErrNoMatch = errors.New("recovery code does not match")
)
