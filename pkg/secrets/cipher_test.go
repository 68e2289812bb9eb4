package secrets_test

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
)

func newCipher(t *testing.T, key string) *secrets.Cipher {
	t.Helper()
	c, err := secrets.New(secrets.Config{MasterKey: key, Environment: "production"})
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing key in production", func(t *testing.T) {
		t.Parallel()
		c, err := secrets.New(secrets.Config{Environment: "production"})
		require.ErrorIs(t, err, secrets.ErrMasterKeyNotSet)
		assert.Nil(t, c)
	})

	t.Run("missing key in development warns and falls back", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := slog.New(slog.NewTextHandler(buf, nil))

		c, err := secrets.New(secrets.Config{Environment: "development"}, secrets.WithLogger(log))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "APP_SECRET")

		fallback := newCipher(t, secrets.DevelopmentMasterKey)
		assert.Equal(t, fallback.HashWithPepper("123456"), c.HashWithPepper("123456"))
	})
}

func TestEncryptDecrypt(t *testing.T) {
	t.Parallel()
	c := newCipher(t, "test-master-key")

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty string", ""},
		{"totp secret", "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP"},
		{"unicode", "Hello 世界 🌍"},
		{"long text", strings.Repeat("lorem ipsum ", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			blob, err := c.Encrypt(tt.plaintext)
			require.NoError(t, err)

			raw, err := base64.StdEncoding.DecodeString(blob)
			require.NoError(t, err)
			assert.Len(t, raw, secrets.NonceSize+secrets.TagSize+len(tt.plaintext))

			plain, err := c.Decrypt(blob)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plain)
		})
	}
}

func TestEncrypt_FreshNonce(t *testing.T) {
	t.Parallel()
	c := newCipher(t, "test-master-key")

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_BitFlip(t *testing.T) {
	t.Parallel()
	c := newCipher(t, "test-master-key")

	blob, err := c.Encrypt("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	for i := range raw {
		for bit := 0; bit < 8; bit++ {
			tampered := bytes.Clone(raw)
			tampered[i] ^= 1 << bit

			plain, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered))
			require.ErrorIs(t, err, secrets.ErrDecryptionFailed, "byte %d bit %d", i, bit)
			require.Empty(t, plain)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	t.Parallel()

	blob, err := newCipher(t, "key-one").Encrypt("secret")
	require.NoError(t, err)

	_, err = newCipher(t, "key-two").Decrypt(blob)
	assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
}

func TestDecrypt_Malformed(t *testing.T) {
	t.Parallel()
	c := newCipher(t, "test-master-key")

	tests := []struct {
		name string
		blob string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"empty", ""},
		{"too short", base64.StdEncoding.EncodeToString(make([]byte, secrets.NonceSize+secrets.TagSize-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := c.Decrypt(tt.blob)
			assert.ErrorIs(t, err, secrets.ErrDecryptionFailed)
			assert.ErrorIs(t, err, secrets.ErrInvalidCiphertext)
		})
	}
}

func TestHashWithPepper(t *testing.T) {
	t.Parallel()
	c := newCipher(t, "pepper")

	h := c.HashWithPepper("482193")
	assert.Equal(t, secrets.Hash("482193pepper"), h)
	assert.Len(t, h, 64)
	assert.NotEqual(t, secrets.Hash("482193"), h)

	other := newCipher(t, "other-pepper")
	assert.NotEqual(t, h, other.HashWithPepper("482193"))
}

func TestVerifyCode(t *testing.T) {
	t.Parallel()
	c := newCipher(t, "pepper")
	stored := c.HashWithPepper("482193")

	assert.True(t, c.VerifyCode("482193", stored))
	assert.False(t, c.VerifyCode("000000", stored))
	assert.False(t, c.VerifyCode("482193", ""))
	assert.False(t, c.VerifyCode("482193", strings.ToUpper(stored)))
}

func TestHash(t *testing.T) {
	t.Parallel()
	// SHA-256 of the empty string.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", secrets.Hash(""))
}

func TestRandom(t *testing.T) {
	t.Parallel()

	tok, err := secrets.RandomToken(32)
	require.NoError(t, err)
	assert.Len(t, tok, 43)
	assert.NotContains(t, tok, "=")
	assert.NotContains(t, tok, "+")
	assert.NotContains(t, tok, "/")

	hx, err := secrets.RandomHex(4)
	require.NoError(t, err)
	assert.Len(t, hx, 8)
	_, err = hex.DecodeString(hx)
	assert.NoError(t, err)

	_, err = secrets.RandomToken(0)
	assert.ErrorIs(t, err, secrets.ErrInvalidLength)
	_, err = secrets.RandomHex(-1)
	assert.ErrorIs(t, err, secrets.ErrInvalidLength)

	key, err := secrets.GenerateMasterKey()
	require.NoError(t, err)
	assert.Len(t, key, 43)
}
