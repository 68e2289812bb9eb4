package email

import (
	"context"
	"errors"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/email/templates"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/otpcode"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/twofactor"
)

// CodeMailer renders one-time codes into emails. It implements
// twofactor.Notifier.
type CodeMailer struct {
	sender  EmailSender
	product string
}

func NewCodeMailer(sender EmailSender, product string) *CodeMailer {
	return &CodeMailer{sender: sender, product: product}
}

var _ twofactor.Notifier = (*CodeMailer)(nil)

func (m *CodeMailer) SendCode(ctx context.Context, n twofactor.Notification) error {
	if n.Email == "" {
		return ErrMissingRecipient
	}

	subject, intro := codeCopy(n.Purpose)
	body, err := templates.Render(ctx, templates.OneTimeCode(templates.OneTimeCodeData{
		Product:   m.product,
		Intro:     intro,
		Code:      n.Code,
		ExpiresIn: n.ExpiresIn,
	}))
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   n.Email,
		Subject:  m.product + ": " + subject,
		BodyHTML: body,
		Tag:      n.Purpose.String(),
	})
}

func codeCopy(p otpcode.Purpose) (subject, intro string) {
	switch p {
	case otpcode.PurposeTwoFactorSetup:
		return "confirm two-factor authentication",
			"Enter this code to finish turning on email two-factor authentication."
	case otpcode.PurposeEmailChange:
		return "confirm your new email address",
			"Enter this code to confirm your new email address."
	default:
		return "your sign-in code",
			"Enter this code to finish signing in."
	}
}
