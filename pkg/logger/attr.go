package logger

import "log/slog"

// Error returns an "error" attribute, or an empty attribute for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID returns a "user_id" attribute.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Role returns a "role" attribute.
func Role(role any) slog.Attr {
	if role == nil {
		return slog.Attr{}
	}
	return slog.Any("role", role)
}

// Provider returns an identity "provider" attribute.
func Provider(name string) slog.Attr {
	return slog.String("provider", name)
}

// BookID returns a "book_id" attribute.
func BookID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("book_id", id)
}

// RequestID returns a "request_id" attribute.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
