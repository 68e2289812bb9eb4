package memstore

import "errors"

var ErrDuplicateEmail = errors.New("email already registered")
