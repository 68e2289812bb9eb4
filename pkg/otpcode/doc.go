// Package otpcode issues and verifies short numeric one-time codes that are
// delivered out of band, usually by email.
//
// Codes are scoped to a user and a Purpose. Issuing a code supersedes every
// unused code for the same pair, so at most one is active. Only a peppered
// hash is stored. A code verifies once, within its TTL (five minutes by
// default), and allows three wrong guesses; the third returns
// ErrTooManyAttempts and locks the code until a new one is issued.
//
// Failed attempts are committed even though Verify returns an error, which
// is why Verify runs inside a Transactor and reports rejections outside it.
//
//	ledger := otpcode.NewLedger(store, store, cipher,
//		otpcode.WithIssueLimiter(bucket),
//		otpcode.WithLogger(log),
//	)
//	code, err := ledger.Issue(ctx, userID, otpcode.PurposeTwoFactorLogin)
//	// deliver code
//	err = ledger.Verify(ctx, userID, input, otpcode.PurposeTwoFactorLogin)
package otpcode
