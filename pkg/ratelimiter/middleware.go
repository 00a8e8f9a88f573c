package ratelimiter

import (
	"math"
	"net/http"
	"strconv"

	"github.com/hustwenchao/bookshelf/handler"
	"github.com/hustwenchao/bookshelf/pkg/clientip"
)

var errTooManyRequests = handler.ErrTooManyRequests.WithMessage("too many requests")

// KeyFunc extracts the limiting key from a request.
type KeyFunc func(r *http.Request) string

// ByIP keys requests by client address.
func ByIP(r *http.Request) string {
	if ip := clientip.GetIPFromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.GetIP(r)
}

// Middleware rejects requests over the limit with 429 and a JSON body.
func Middleware(l *Limiter, keyFunc KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := l.Allow(keyFunc(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				retry := max(1, int(math.Ceil(res.RetryAfter.Seconds())))
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				handler.WriteError(w, errTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
