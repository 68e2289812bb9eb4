package recovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/recovery"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/secrets"
)

func newHasher(t *testing.T) *secrets.Cipher {
	t.Helper()
	c, err := secrets.New(secrets.Config{MasterKey: "recovery-test", Environment: "production"})
	require.NoError(t, err)
	return c
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	codes, err := recovery.Generate()
	require.NoError(t, err)
	require.Len(t, codes, recovery.Count)

	seen := make(map[string]bool)
	for _, c := range codes {
		assert.Regexp(t, "^[0-9A-F]{4}-[0-9A-F]{4}$", c)
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"AB12-CD34", "ab12cd34"},
		{"ab12cd34", "ab12cd34"},
		{" ab12 - CD34 ", "ab12cd34"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, recovery.Normalize(tt.in), tt.in)
	}
}

func TestHashAll(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	hashes := recovery.HashAll(h, []string{"AB12-CD34", "ab12cd34"})
	require.Len(t, hashes, 2)
	assert.Equal(t, hashes[0], hashes[1])
	assert.Equal(t, h.HashWithPepper("ab12cd34"), hashes[0])
}

func TestVerifyAndConsume(t *testing.T) {
	t.Parallel()
	h := newHasher(t)

	codes, err := recovery.Generate()
	require.NoError(t, err)
	stored := recovery.HashAll(h, codes)
	original := append([]string(nil), stored...)

	ok, remaining := recovery.VerifyAndConsume(h, stored, codes[2])
	require.True(t, ok)
	assert.Len(t, remaining, recovery.Count-1)
	assert.NotContains(t, remaining, original[2])
	assert.Equal(t, original, stored, "input slice is not modified")

	ok, again := recovery.VerifyAndConsume(h, remaining, codes[2])
	assert.False(t, ok, "a code verifies once")
	assert.Equal(t, remaining, again)

	for i, c := range codes {
		if i == 2 {
			continue
		}
		ok, _ := recovery.VerifyAndConsume(h, remaining, c)
		assert.True(t, ok, "code %d stays valid", i)
	}
}

func TestVerifyAndConsume_Normalizes(t *testing.T) {
	t.Parallel()
	h := newHasher(t)
	stored := recovery.HashAll(h, []string{"AB12-CD34"})

	ok, remaining := recovery.VerifyAndConsume(h, stored, "ab12cd34")
	assert.True(t, ok)
	assert.Empty(t, remaining)
}

func TestVerifyAndConsume_NoMatch(t *testing.T) {
	t.Parallel()
	h := newHasher(t)
	stored := recovery.HashAll(h, []string{"AB12-CD34"})

	for _, in := range []string{"", "----", "0000-0000"} {
		ok, remaining := recovery.VerifyAndConsume(h, stored, in)
		assert.False(t, ok, in)
		assert.Equal(t, stored, remaining)
	}

	ok, remaining := recovery.VerifyAndConsume(h, nil, "AB12-CD34")
	assert.False(t, ok)
	assert.Empty(t, remaining)
}
