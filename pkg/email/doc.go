// Package email delivers transactional email, in particular one-time codes.
//
// EmailSender has two implementations: the Postmark client for production
// and DevSender, which writes each message to disk as HTML plus JSON
// metadata. NewSender picks one from Config.
//
// CodeMailer sits on top of a sender and implements twofactor.Notifier:
//
//	sender, err := email.NewSender(cfg, log)
//	if err != nil {
//		return err
//	}
//	manager, err := twofactor.NewManager(tfCfg, deps,
//		twofactor.WithNotifier(email.NewCodeMailer(sender, "OpenEOS")),
//	)
//
// Bodies are rendered with templ components from the templates subpackage.
// Errors wrap ErrInvalidConfig, ErrInvalidParams or ErrFailedToSendEmail.
package email
