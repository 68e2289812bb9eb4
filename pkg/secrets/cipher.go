package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/logger"
)

const (
	// NonceSize is the GCM nonce length stored at the front of every blob.
	NonceSize = 16
	// TagSize is the GCM authentication tag length.
	TagSize = 16
)

// Cipher encrypts long-lived secrets at rest and hashes short codes with a
// server-side pepper. It is safe for concurrent use; its key never changes
// after New returns.
type Cipher struct {
	aead   cipher.AEAD
	pepper []byte
	logger *slog.Logger
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithLogger sets the logger used for startup warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cipher) {
		if l != nil {
			c.logger = l
		}
	}
}

// New derives the AES-256 key as SHA-256 of the configured master key.
// A missing master key is an error in production; in any other environment
// DevelopmentMasterKey is used and a warning is logged.
func New(cfg Config, opts ...Option) (*Cipher, error) {
	c := &Cipher{logger: logger.Discard()}
	for _, opt := range opts {
		opt(c)
	}

	master := cfg.MasterKey
	if master == "" {
		if cfg.production() {
			return nil, ErrMasterKeyNotSet
		}
		c.logger.Warn("APP_SECRET is not set, using the built-in development master key; encrypted secrets and code hashes are NOT protected",
			logger.Component("secrets"),
		)
		master = DevelopmentMasterKey
	}

	key := sha256.Sum256([]byte(master))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	aead, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}

	c.aead = aead
	c.pepper = []byte(master)
	return c, nil
}

// Encrypt seals plaintext under a fresh random nonce and returns
// base64(nonce ‖ tag ‖ ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncryptionFailed, err)
	}

	// Seal appends the tag after the ciphertext; the stored layout puts it first.
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ct, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	blob := make([]byte, 0, NonceSize+TagSize+len(ct))
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ct...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt reverses Encrypt. Any malformed blob or failed tag check returns
// an error wrapping ErrDecryptionFailed.
func (c *Cipher) Decrypt(blob string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, ErrInvalidCiphertext, err)
	}
	if len(raw) < NonceSize+TagSize {
		return "", errors.Join(ErrDecryptionFailed, ErrInvalidCiphertext)
	}

	nonce := raw[:NonceSize]
	tag := raw[NonceSize : NonceSize+TagSize]
	ct := raw[NonceSize+TagSize:]

	sealed := make([]byte, 0, len(ct)+TagSize)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.Join(ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}

// HashWithPepper returns hex(SHA-256(code ‖ master key)).
func (c *Cipher) HashWithPepper(code string) string {
	h := sha256.New()
	h.Write([]byte(code))
	h.Write(c.pepper)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyCode reports whether code hashes to storedHash, comparing in
// constant time.
func (c *Cipher) VerifyCode(code, storedHash string) bool {
	computed := c.HashWithPepper(code)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// Hash returns hex(SHA-256(input)). Use it for fingerprints and lookup keys,
// not for values that need to stay secret.
func Hash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
