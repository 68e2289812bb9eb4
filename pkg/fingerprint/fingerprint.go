package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"slices"
	"strings"
)

// Header lets a client send a stable identifier of its own, for example a
// random value kept in local storage. It takes precedence over the derived
// fingerprint.
const Header = "X-Device-Fingerprint"

const maxClientValue = 128

// stableHeaders are present on nearly every browser request; which of them
// a client sends distinguishes browsers without varying between requests.
var stableHeaders = []string{
	"accept", "accept-encoding", "accept-language", "cache-control",
	"connection", "sec-fetch-dest", "sec-fetch-mode", "sec-fetch-site",
	"upgrade-insecure-requests", "user-agent",
}

// FromRequest returns the client-supplied fingerprint if present and sane,
// otherwise Generate(r).
func FromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(Header)); v != "" && len(v) <= maxClientValue {
		return v
	}
	return Generate(r)
}

// Generate derives a 32-character hex fingerprint from the User-Agent, the
// Accept headers and the set of stable headers present. The client IP is
// left out so a device keeps its fingerprint across networks.
func Generate(r *http.Request) string {
	components := []string{
		r.UserAgent(),
		r.Header.Get("Accept-Language"),
		r.Header.Get("Accept-Encoding"),
		r.Header.Get("Accept"),
		headerSet(r),
	}

	filtered := components[:0]
	for _, c := range components {
		if c != "" {
			filtered = append(filtered, c)
		}
	}

	sum := sha256.Sum256([]byte(strings.Join(filtered, "|")))
	return hex.EncodeToString(sum[:16])
}

func headerSet(r *http.Request) string {
	var names []string
	for name := range r.Header {
		lower := strings.ToLower(name)
		if slices.Contains(stableHeaders, lower) {
			names = append(names, lower)
		}
	}
	slices.Sort(names)
	return strings.Join(names, ",")
}
