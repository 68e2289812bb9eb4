// Package pgstore is the PostgreSQL implementation of the storage
// interfaces used by twofactor, otpcode, trusteddevice and password. It
// embeds its goose migrations; apply them with pg.Migrate(ctx, pool, cfg,
// pgstore.Migrations, log).
//
// Profile reads for update and code lookups lock their rows with FOR UPDATE,
// and issuing a code takes an advisory lock per (user, purpose), so the
// guarantees the in-memory store gets from its single lock hold across
// processes.
package pgstore
