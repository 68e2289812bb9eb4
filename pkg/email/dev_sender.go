package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes each email to dir as an HTML body and a JSON metadata
// file. For local development only.
type DevSender struct {
	dir string
	now func() time.Time
}

func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type emailMetadata struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

func (d *DevSender) SendEmail(_ context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %w", ErrFailedToSendEmail, err)
	}

	now := d.now()
	name := params.Tag
	if name == "" {
		name = params.Subject
	}
	base := filepath.Join(d.dir, now.Format("2006_01_02_150405.000000")+"_"+sanitizeFilename(name))

	if err := os.WriteFile(base+".html", []byte(params.BodyHTML), 0o600); err != nil {
		return fmt.Errorf("%w: write html: %w", ErrFailedToSendEmail, err)
	}

	meta, err := json.MarshalIndent(emailMetadata{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %w", ErrFailedToSendEmail, err)
	}
	if err := os.WriteFile(base+".json", meta, 0o600); err != nil {
		return fmt.Errorf("%w: write metadata: %w", ErrFailedToSendEmail, err)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func sanitizeFilename(s string) string {
	s = unsafeFilenameChars.ReplaceAllString(strings.ReplaceAll(s, " ", "_"), "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "email"
	}
	return strings.ToLower(s)
}
