package trusteddevice_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/fingerprint"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/memstore"
	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/trusteddevice"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newRegistry(t *testing.T, opts ...trusteddevice.Option) (*trusteddevice.Registry, *memstore.Store, *clock) {
	t.Helper()

	store := memstore.New()
	c := &clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]trusteddevice.Option{trusteddevice.WithClock(c.Now)}, opts...)
	return trusteddevice.NewRegistry(store, opts...), store, c
}

var laptop = trusteddevice.Info{
	Name:      "Chrome on macOS",
	Browser:   "Chrome",
	OS:        "macOS",
	IPAddress: "203.0.113.7",
}

func TestRegistry_Trust(t *testing.T) {
	t.Parallel()

	reg, _, c := newRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	d, err := reg.Trust(ctx, userID, "fp-laptop", laptop)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, d.ID)
	assert.Equal(t, userID, d.UserID)
	assert.Equal(t, "fp-laptop", d.Fingerprint)
	assert.Equal(t, laptop.Name, d.Name)
	assert.Equal(t, laptop.IPAddress, d.IPAddress)
	assert.Equal(t, c.Now(), d.LastUsedAt)
	assert.Equal(t, c.Now().Add(trusteddevice.DefaultTTL), d.ExpiresAt)
}

func TestRegistry_Trust_MissingFingerprint(t *testing.T) {
	t.Parallel()

	reg, _, _ := newRegistry(t)

	_, err := reg.Trust(context.Background(), uuid.New(), "  ", laptop)
	assert.ErrorIs(t, err, trusteddevice.ErrMissingFingerprint)
}

func TestRegistry_Trust_RefreshesExisting(t *testing.T) {
	t.Parallel()

	reg, _, c := newRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := reg.Trust(ctx, userID, "fp-laptop", laptop)
	require.NoError(t, err)

	c.Advance(10 * 24 * time.Hour)
	moved := laptop
	moved.IPAddress = "198.51.100.23"
	second, err := reg.Trust(ctx, userID, "fp-laptop", moved)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "198.51.100.23", second.IPAddress)
	assert.Equal(t, c.Now().Add(trusteddevice.DefaultTTL), second.ExpiresAt)

	devices, err := reg.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, devices, 1)
}

func TestRegistry_IsTrusted(t *testing.T) {
	t.Parallel()

	t.Run("within the window", func(t *testing.T) {
		t.Parallel()

		reg, _, c := newRegistry(t)
		ctx := context.Background()
		userID := uuid.New()

		_, err := reg.Trust(ctx, userID, "fp", laptop)
		require.NoError(t, err)

		c.Advance(29 * 24 * time.Hour)
		trusted, err := reg.IsTrusted(ctx, userID, "fp")
		require.NoError(t, err)
		assert.True(t, trusted)

		devices, err := reg.List(ctx, userID)
		require.NoError(t, err)
		require.Len(t, devices, 1)
		assert.Equal(t, c.Now(), devices[0].LastUsedAt, "lookup refreshes last use")
	})

	t.Run("expired record is evicted", func(t *testing.T) {
		t.Parallel()

		reg, _, c := newRegistry(t)
		ctx := context.Background()
		userID := uuid.New()

		_, err := reg.Trust(ctx, userID, "fp", laptop)
		require.NoError(t, err)

		c.Advance(31 * 24 * time.Hour)
		trusted, err := reg.IsTrusted(ctx, userID, "fp")
		require.NoError(t, err)
		assert.False(t, trusted)

		devices, err := reg.List(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, devices)
	})

	t.Run("touch does not extend expiry", func(t *testing.T) {
		t.Parallel()

		reg, _, c := newRegistry(t)
		ctx := context.Background()
		userID := uuid.New()

		_, err := reg.Trust(ctx, userID, "fp", laptop)
		require.NoError(t, err)

		c.Advance(20 * 24 * time.Hour)
		trusted, err := reg.IsTrusted(ctx, userID, "fp")
		require.NoError(t, err)
		require.True(t, trusted)

		c.Advance(11 * 24 * time.Hour)
		trusted, err = reg.IsTrusted(ctx, userID, "fp")
		require.NoError(t, err)
		assert.False(t, trusted)
	})

	t.Run("unknown and empty fingerprints", func(t *testing.T) {
		t.Parallel()

		reg, _, _ := newRegistry(t)
		ctx := context.Background()
		userID := uuid.New()

		_, err := reg.Trust(ctx, userID, "fp", laptop)
		require.NoError(t, err)

		trusted, err := reg.IsTrusted(ctx, userID, "other")
		require.NoError(t, err)
		assert.False(t, trusted)

		trusted, err = reg.IsTrusted(ctx, userID, "")
		require.NoError(t, err)
		assert.False(t, trusted)

		trusted, err = reg.IsTrusted(ctx, uuid.New(), "fp")
		require.NoError(t, err)
		assert.False(t, trusted, "devices are per user")
	})
}

func TestRegistry_WithTTL(t *testing.T) {
	t.Parallel()

	reg, _, c := newRegistry(t, trusteddevice.WithTTL(time.Hour))
	ctx := context.Background()
	userID := uuid.New()

	_, err := reg.Trust(ctx, userID, "fp", laptop)
	require.NoError(t, err)

	c.Advance(2 * time.Hour)
	trusted, err := reg.IsTrusted(ctx, userID, "fp")
	require.NoError(t, err)
	assert.False(t, trusted)
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	reg, _, c := newRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := reg.Trust(ctx, userID, "fp-old", laptop)
	require.NoError(t, err)
	c.Advance(time.Hour)
	_, err = reg.Trust(ctx, userID, "fp-new", laptop)
	require.NoError(t, err)
	_, err = reg.Trust(ctx, uuid.New(), "fp-other-user", laptop)
	require.NoError(t, err)

	devices, err := reg.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "fp-new", devices[0].Fingerprint)
	assert.Equal(t, "fp-old", devices[1].Fingerprint)
}

func TestRegistry_Remove(t *testing.T) {
	t.Parallel()

	reg, _, _ := newRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	d, err := reg.Trust(ctx, userID, "fp", laptop)
	require.NoError(t, err)

	t.Run("other user cannot remove it", func(t *testing.T) {
		err := reg.Remove(ctx, uuid.New(), d.ID)
		assert.ErrorIs(t, err, trusteddevice.ErrNotFound)
	})

	require.NoError(t, reg.Remove(ctx, userID, d.ID))

	err = reg.Remove(ctx, userID, d.ID)
	assert.ErrorIs(t, err, trusteddevice.ErrNotFound)

	trusted, err := reg.IsTrusted(ctx, userID, "fp")
	require.NoError(t, err)
	assert.False(t, trusted)
}

func TestRegistry_RemoveAll(t *testing.T) {
	t.Parallel()

	reg, _, _ := newRegistry(t)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	for _, fp := range []string{"a", "b", "c"} {
		_, err := reg.Trust(ctx, userID, fp, laptop)
		require.NoError(t, err)
	}
	_, err := reg.Trust(ctx, otherID, "a", laptop)
	require.NoError(t, err)

	require.NoError(t, reg.RemoveAll(ctx, userID))

	devices, err := reg.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, devices)

	devices, err = reg.List(ctx, otherID)
	require.NoError(t, err)
	assert.Len(t, devices, 1)

	assert.NoError(t, reg.RemoveAll(ctx, userID), "removing nothing is not an error")
}

func TestRegistry_Cleanup(t *testing.T) {
	t.Parallel()

	reg, _, c := newRegistry(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := reg.Trust(ctx, userID, "old", laptop)
	require.NoError(t, err)
	c.Advance(15 * 24 * time.Hour)
	_, err = reg.Trust(ctx, userID, "new", laptop)
	require.NoError(t, err)

	c.Advance(16 * 24 * time.Hour)

	n, err := reg.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	devices, err := reg.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "new", devices[0].Fingerprint)
}

func TestInfoFromRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/login", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	info := trusteddevice.InfoFromRequest(r)
	assert.Equal(t, "Chrome on macOS", info.Name)
	assert.Equal(t, "Chrome", info.Browser)
	assert.Equal(t, "macOS", info.OS)
	assert.Equal(t, "203.0.113.7", info.IPAddress)
}

func TestFingerprintFromRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest("GET", "/login", nil)
	r.Header.Set(fingerprint.Header, "client-supplied-id")
	assert.Equal(t, "client-supplied-id", trusteddevice.FingerprintFromRequest(r))

	r = httptest.NewRequest("GET", "/login", nil)
	r.Header.Set("User-Agent", "curl/8.0")
	assert.Len(t, trusteddevice.FingerprintFromRequest(r), 32)
}
