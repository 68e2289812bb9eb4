// Package secrets protects long-lived secrets at rest and hashes short
// one-time codes.
//
// A Cipher is built once at startup from Config. The AES-256 key is SHA-256
// of the configured master key; the same master key doubles as the pepper for
// HashWithPepper.
//
// # Architecture
//
//  1. Encryption – AES-256-GCM with a 16-byte random nonce per call. The
//     stored blob is base64(nonce ‖ tag ‖ ciphertext).
//  2. Decryption – the blob is split back apart and the tag is verified.
//     A tampered blob or a blob sealed under another key returns an error
//     wrapping ErrDecryptionFailed; corrupted plaintext is never returned.
//  3. Hashing – Hash is plain SHA-256. HashWithPepper appends the master key
//     before hashing, so a leaked table of six-digit code hashes cannot be
//     reversed without it. VerifyCode compares hashes with
//     crypto/subtle.ConstantTimeCompare.
//  4. Randomness – RandomToken and RandomHex read from crypto/rand only.
//
// # Usage
//
//	c, err := secrets.New(secrets.Config{MasterKey: os.Getenv("APP_SECRET")},
//	    secrets.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//
//	blob, err := c.Encrypt(totpSecret)
//	plain, err := c.Decrypt(blob)
//
//	hash := c.HashWithPepper("482193")
//	ok := c.VerifyCode("482193", hash)
//
// # Error Handling
//
// Errors wrap package sentinels such as ErrDecryptionFailed and
// ErrMasterKeyNotSet. Use errors.Is to match against them.
package secrets
