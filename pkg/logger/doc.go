// Package logger builds *slog.Logger values with consistent defaults for the
// services in this module and provides attribute helpers so that keys such as
// "user_id", "purpose" or "method" are spelled the same everywhere.
//
// New applies Option values, picks a text or JSON handler and wraps it with
// LogHandlerDecorator, which pulls request-scoped values out of the context
// through registered ContextExtractor callbacks.
//
// # Usage
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "twofactor"))
//	log.InfoContext(ctx, "two-factor enabled",
//	    logger.UserID(userID),
//	    logger.Method("totp"),
//	)
//
// Components that accept an optional logger default to Discard.
//
// Codes, secrets and keys must never be passed to a logger.
package logger
