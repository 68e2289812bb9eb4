package totp

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	Digits     = 6  // code length
	Period     = 30 // seconds per time step
	Skew       = 1  // steps of drift accepted on either side
	SecretSize = 20 // 160-bit secret
)

// secretRegex matches unpadded RFC 4648 base32.
var secretRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

var validateOpts = totp.ValidateOpts{
	Period:    Period,
	Skew:      Skew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// KeyParams identifies the account a new key is provisioned for.
type KeyParams struct {
	Issuer      string // shown as the account group in authenticator apps
	AccountName string // usually the user's email
}

func (p KeyParams) validate() error {
	if strings.TrimSpace(p.Issuer) == "" {
		return ErrMissingIssuer
	}
	if strings.TrimSpace(p.AccountName) == "" {
		return ErrMissingAccountName
	}
	return nil
}

// Key is a freshly generated TOTP secret with its provisioning URI.
type Key struct {
	Secret string // base32 secret for manual entry
	URI    string // otpauth://totp/... URI for QR codes
}

// GenerateKey creates a random 160-bit secret using HMAC-SHA1, 30-second
// steps and 6 digits, and builds the matching otpauth:// URI.
func GenerateKey(p KeyParams) (*Key, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	k, err := totp.Generate(totp.GenerateOpts{
		Issuer:      p.Issuer,
		AccountName: p.AccountName,
		Period:      Period,
		SecretSize:  SecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateSecretKey, err)
	}

	return &Key{Secret: k.Secret(), URI: k.URL()}, nil
}

// ValidateAt reports whether code is valid for secret at t, accepting the
// previous and next time step as well. A code of the wrong length is simply
// invalid; a malformed secret is an error.
func ValidateAt(secret, code string, t time.Time) (bool, error) {
	secret, err := normalizeSecret(secret)
	if err != nil {
		return false, err
	}

	ok, err := totp.ValidateCustom(strings.TrimSpace(code), secret, t, validateOpts)
	if errors.Is(err, otp.ErrValidateInputInvalidLength) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrFailedToValidateTOTP, err)
	}
	return ok, nil
}

// GenerateCodeAt returns the code for the time step containing t.
func GenerateCodeAt(secret string, t time.Time) (string, error) {
	secret, err := normalizeSecret(secret)
	if err != nil {
		return "", err
	}

	code, err := totp.GenerateCodeCustom(secret, t, validateOpts)
	if err != nil {
		return "", errors.Join(ErrFailedToGenerateTOTP, err)
	}
	return code, nil
}

func normalizeSecret(secret string) (string, error) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if secret == "" {
		return "", ErrMissingSecret
	}
	if !secretRegex.MatchString(secret) {
		return "", ErrInvalidSecret
	}
	return secret, nil
}
