package fingerprint_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenEOS-Project/openeos-api-sub001/pkg/fingerprint"
)

const chromeUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

func browserRequest(ua, remote string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = remote
	r.Header.Set("User-Agent", ua)
	r.Header.Set("Accept", "text/html")
	r.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	r.Header.Set("Accept-Encoding", "gzip, br")
	return r
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	a := fingerprint.Generate(browserRequest(chromeUA, "198.51.100.1:1000"))
	assert.Regexp(t, "^[0-9a-f]{32}$", a)

	t.Run("stable across networks", func(t *testing.T) {
		t.Parallel()
		b := fingerprint.Generate(browserRequest(chromeUA, "203.0.113.50:2000"))
		assert.Equal(t, a, b)
	})

	t.Run("differs by browser", func(t *testing.T) {
		t.Parallel()
		b := fingerprint.Generate(browserRequest("Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0", "198.51.100.1:1000"))
		assert.NotEqual(t, a, b)
	})

	t.Run("differs by language", func(t *testing.T) {
		t.Parallel()
		r := browserRequest(chromeUA, "198.51.100.1:1000")
		r.Header.Set("Accept-Language", "en-US")
		assert.NotEqual(t, a, fingerprint.Generate(r))
	})

	t.Run("ignores unrelated headers", func(t *testing.T) {
		t.Parallel()
		r := browserRequest(chromeUA, "198.51.100.1:1000")
		r.Header.Set("X-Request-Id", "abc")
		assert.Equal(t, a, fingerprint.Generate(r))
	})
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	r := browserRequest(chromeUA, "198.51.100.1:1000")
	derived := fingerprint.FromRequest(r)
	assert.Equal(t, fingerprint.Generate(r), derived)

	r.Header.Set(fingerprint.Header, "  device-123  ")
	assert.Equal(t, "device-123", fingerprint.FromRequest(r))

	r.Header.Set(fingerprint.Header, strings.Repeat("x", 129))
	assert.Equal(t, derived, fingerprint.FromRequest(r), "oversized values are ignored")
}
