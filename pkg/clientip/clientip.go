package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Headers lists the proxy headers consulted, in priority order, before
// falling back to RemoteAddr. X-Forwarded-For is handled separately because
// it may carry a chain.
var Headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Real-IP",
}

// FromRequest returns the client's IP address, or "" when none of the
// candidates parse as an IP.
func FromRequest(r *http.Request) string {
	for _, h := range Headers[:2] {
		if ip := parse(r.Header.Get(h)); ip != "" {
			return ip
		}
	}

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		for part := range strings.SplitSeq(fwd, ",") {
			if ip := parse(part); ip != "" {
				return ip
			}
		}
	}

	for _, h := range Headers[2:] {
		if ip := parse(r.Header.Get(h)); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parse(r.RemoteAddr)
	}
	return parse(host)
}

func parse(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
