package email

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// EmailSender delivers one rendered email.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

type SendEmailParams struct {
	SendTo   string `json:"send_to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"` // Postmark tag, also names DevSender files
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func (p SendEmailParams) Validate() error {
	switch {
	case strings.TrimSpace(p.SendTo) == "":
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	case !emailRegex.MatchString(p.SendTo):
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	case strings.TrimSpace(p.Subject) == "":
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	case strings.TrimSpace(p.BodyHTML) == "":
		return fmt.Errorf("%w: BodyHTML is required", ErrInvalidParams)
	}
	return nil
}

// NewSender picks Postmark when it is configured and DevSender otherwise.
func NewSender(cfg Config, log *slog.Logger) (EmailSender, error) {
	if cfg.UsePostmark() {
		return NewPostmarkClient(cfg)
	}
	if log != nil {
		log.Warn("postmark not configured, writing emails to disk", slog.String("dir", cfg.DevDir))
	}
	return NewDevSender(cfg.DevDir), nil
}
