// Package trusteddevice remembers devices on which a user has completed a
// second-factor check, so later logins from them can skip the challenge for
// a bounded window (30 days by default).
//
// A device is keyed by (user, fingerprint). Trusting it again refreshes the
// record instead of adding another. Expired records are evicted when looked
// up and in bulk by Cleanup. All of a user's devices are removed when they
// turn two-factor authentication off.
//
// InfoFromRequest and FingerprintFromRequest derive the metadata and key
// from an incoming HTTP request.
package trusteddevice
