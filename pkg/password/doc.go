// Package password checks a user's primary password against the bcrypt hash
// kept on the user record. The two-factor manager uses it to confirm the
// password before turning two-factor authentication off.
package password
