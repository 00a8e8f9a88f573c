package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hustwenchao/bookshelf/handler"
	"github.com/hustwenchao/bookshelf/pkg/environment"
	"github.com/hustwenchao/bookshelf/pkg/logger"
	"github.com/hustwenchao/bookshelf/pkg/metrics"
)

var (
	errUnauthorized  = handler.ErrUnauthorized.WithMessage("authentication required")
	errAdminRequired = handler.NewHTTPError(http.StatusForbidden, "admin_required").WithMessage("admin access required")
)

// Guard rejects requests before the wrapped handler runs.
type Guard struct {
	sessions *SessionManager
	metrics  metrics.Recorder
	logger   *slog.Logger
}

type GuardOption func(*Guard)

func WithGuardMetrics(r metrics.Recorder) GuardOption {
	return func(g *Guard) {
		if r != nil {
			g.metrics = r
		}
	}
}

func WithGuardLogger(l *slog.Logger) GuardOption {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewGuard(sessions *SessionManager, opts ...GuardOption) *Guard {
	g := &Guard{
		sessions: sessions,
		metrics:  metrics.Noop{},
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RequireSession responds 401 unless the request carries a valid session.
// The session is stored in the request context for downstream handlers.
func (g *Guard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := g.sessions.FromRequest(r)
		if err != nil {
			reason := rejectionReason(err)
			g.metrics.GuardRejected(reason)
			g.logger.DebugContext(r.Context(), "session rejected",
				slog.String("reason", reason),
				slog.String("path", r.URL.Path),
			)
			handler.WriteError(w, errUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireAdmin checks the session first, so an anonymous request gets 401
// rather than 403.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return g.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromContext(r.Context())
		if !s.IsAdmin() {
			g.metrics.GuardRejected("admin_required")
			g.logger.InfoContext(r.Context(), "admin access denied",
				logger.UserID(s.UserID),
				logger.Role(s.Role),
			)
			handler.WriteError(w, errAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireEnvironment responds 403 when the request environment differs
// from env. Mount it after RequireSession to keep 401 ahead of 403.
func (g *Guard) RequireEnvironment(env environment.Environment) func(http.Handler) http.Handler {
	rejection := handler.ErrForbidden.WithMessage(fmt.Sprintf("disabled outside %s environment", env))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if environment.FromContext(r.Context()) != env {
				g.metrics.GuardRejected("environment")
				handler.WriteError(w, rejection)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingSession):
		return "missing"
	case errors.Is(err, ErrExpiredSession):
		return "expired"
	default:
		return "invalid"
	}
}
