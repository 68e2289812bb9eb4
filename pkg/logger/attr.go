package logger

import (
	"log/slog"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// DeviceID records a trusted device identifier under the key "device_id".
// If id is nil, it returns an empty Attr.
func DeviceID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("device_id", id)
}

// Purpose records the purpose of a one-time code under the key "purpose".
func Purpose(p string) slog.Attr {
	return slog.String("purpose", p)
}

// Method records a second-factor method under the key "method".
func Method(m string) slog.Attr {
	return slog.String("method", m)
}

// Reason records why a verification was rejected. Only ever logged,
// never returned to callers.
func Reason(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("reason", err.Error())
}

// Count records a number of affected rows or items under the key "count".
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
