package password

import "errors"

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPasswordRequired = errors.New("password is required")
	ErrNoPassword       = errors.New("account has no password")
	ErrUserNotFound     = errors.New("user not found")
	ErrHashFailed       = errors.New("failed to hash password")
)
