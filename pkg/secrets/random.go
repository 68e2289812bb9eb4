package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
)

func randomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, errors.Join(ErrRandomFailed, err)
	}
	return b, nil
}

// RandomToken returns n random bytes encoded as unpadded URL-safe base64.
func RandomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RandomHex returns n random bytes encoded as lowercase hex (2n characters).
func RandomHex(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateMasterKey returns a fresh 256-bit master key suitable for APP_SECRET.
func GenerateMasterKey() (string, error) {
	return RandomToken(32)
}
