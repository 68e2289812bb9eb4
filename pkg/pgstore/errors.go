package pgstore

import "errors"

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrQuery          = errors.New("database query failed")
	ErrUnknownUser    = errors.New("referenced user does not exist")
)
