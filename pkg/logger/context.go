package logger

import (
	"context"
	"log/slog"
)

type correlationKey struct{}

// WithCorrelationID stores id in ctx so that records logged with that
// context carry a "correlation_id" attribute.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationKey{}).(string)
	return id, ok
}

// CorrelationID is a ContextExtractor for the id set by WithCorrelationID.
func CorrelationID(ctx context.Context) (slog.Attr, bool) {
	id, ok := CorrelationIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("correlation_id", id), true
}
