package qrcode

import "errors"

var (
	ErrEmptyContent     = errors.New("qr code content cannot be empty")
	ErrFailedToGenerate = errors.New("failed to generate qr code")
)
