package twofactor

import "strings"

// Config is read once at startup.
type Config struct {
	Issuer string `env:"TWO_FACTOR_ISSUER" envDefault:"OpenEOS"`
	QRSize int    `env:"TWO_FACTOR_QR_SIZE" envDefault:"256"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Issuer) == "" {
		return ErrMissingIssuer
	}
	return nil
}
