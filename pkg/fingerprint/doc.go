// Package fingerprint identifies a browser or app installation across
// requests so it can be remembered as a trusted device.
//
// A client may send its own identifier in the X-Device-Fingerprint header.
// Without it, Generate hashes request characteristics that stay stable for a
// given browser. A derived fingerprint is a convenience, not a secret; the
// trust decision still requires a prior successful second-factor check.
package fingerprint
