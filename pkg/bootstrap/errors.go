package bootstrap

import "errors"

var ErrNoStore = errors.New("bootstrap: store is required")
