package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid email configuration")
	ErrInvalidParams     = errors.New("invalid email parameters")
	ErrMissingRecipient  = errors.New("notification has no recipient address")
)
