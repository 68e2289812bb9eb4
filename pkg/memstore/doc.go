// Package memstore is an in-memory implementation of every storage
// interface the two-factor packages need: twofactor.ProfileStore,
// otpcode.Store, trusteddevice.Store, password.HashStore and the Transactor
// they share.
//
// It backs the package tests and local development without a database.
// Transactions are serialised on a single lock and roll back by restoring a
// snapshot, which matches the isolation the Postgres store gets from row
// locks closely enough for single-process use. Data is lost on restart.
package memstore
