package email

import "fmt"

// Config holds delivery settings. Without Postmark tokens emails are written
// to DevDir instead of being sent.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// UsePostmark reports whether a server token is configured.
func (c Config) UsePostmark() bool {
	return c.PostmarkServerToken != ""
}

// Validate checks the Postmark settings.
func (c Config) Validate() error {
	switch {
	case c.PostmarkServerToken == "":
		return fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	case c.PostmarkAccountToken == "":
		return fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	case c.SenderEmail == "":
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	case !emailRegex.MatchString(c.SenderEmail):
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	case c.SupportEmail == "":
		return fmt.Errorf("%w: SupportEmail is required", ErrInvalidConfig)
	case !emailRegex.MatchString(c.SupportEmail):
		return fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}
