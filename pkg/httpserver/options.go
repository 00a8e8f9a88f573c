package httpserver

import (
	"log/slog"
	"time"
)

type settings struct {
	cfg     Config
	logger  *slog.Logger
	onStart []func(addr string)
}

// Option adjusts a Server before it starts.
type Option func(*settings)

func WithAddr(addr string) Option {
	return func(s *settings) {
		if addr != "" {
			s.cfg.Addr = addr
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.cfg.ShutdownTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithStartHook registers a callback invoked once the listener is bound.
func WithStartHook(fn func(addr string)) Option {
	return func(s *settings) {
		if fn != nil {
			s.onStart = append(s.onStart, fn)
		}
	}
}
