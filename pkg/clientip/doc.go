// Package clientip extracts the caller's IP address from an HTTP request,
// preferring proxy headers (Cloudflare, DigitalOcean, X-Forwarded-For,
// X-Real-IP) over the connection's RemoteAddr. Invalid values are skipped.
//
// Only deploy behind a proxy that overwrites these headers; otherwise a
// client can choose the address recorded for it.
package clientip
