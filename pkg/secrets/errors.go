package secrets

import "errors"

var (
	ErrMasterKeyNotSet   = errors.New("master key is not set")
	ErrEncryptionFailed  = errors.New("encryption failed")
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidCiphertext = errors.New("invalid ciphertext format")
	ErrInvalidLength     = errors.New("random length must be positive")
	ErrRandomFailed      = errors.New("failed to read random bytes")
)
