package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// NewPostmarkClient creates a Postmark-backed sender. Replies go to
// SupportEmail.
func NewPostmarkClient(cfg Config) (EmailSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &postmarkClient{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// SendEmail sends without open or link tracking; these are security emails.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:     c.config.SenderEmail,
		ReplyTo:  c.config.SupportEmail,
		To:       params.SendTo,
		Subject:  params.Subject,
		Tag:      params.Tag,
		HTMLBody: params.BodyHTML,
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
