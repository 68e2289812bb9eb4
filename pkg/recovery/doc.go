// Package recovery generates and checks single-use backup codes that let a
// user past two-factor authentication when their primary method is lost.
//
// A set is Count codes of eight hex characters shown as XXXX-XXXX. Codes are
// normalized (separators stripped, lowercased) before hashing, so users may
// type them in any case with or without the dash. Only the hashes are stored;
// VerifyAndConsume removes a hash the moment it matches.
package recovery
