package bookshelf

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

type MountFunc func() http.Handler

func (f MountFunc) Handle() http.Handler { return f() }

// RouterOptions configures which services to mount. Each service is
// optional and is only mounted if provided.
type RouterOptions struct {
	// Auth serves /auth: login, callback, sign-out and the session endpoint.
	Auth Mountable
	// AuthMiddlewares run in front of Auth, typically the rate limiter.
	AuthMiddlewares []func(http.Handler) http.Handler

	// Books serves the catalog under /api. It applies its own guard.
	Books Mountable
	// Admin serves /api/admin.
	Admin Mountable
}

// Router creates the application router.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/", bookshelf.Router(bookshelf.RouterOptions{
//	    Auth:  authHandler,
//	    Admin: bookshelf.MountFunc(authHandler.AdminHandle),
//	    Books: booksHandler,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Auth != nil {
		r.Route("/auth", func(auth chi.Router) {
			auth.Use(opts.AuthMiddlewares...)
			auth.Mount("/", opts.Auth.Handle())
		})
	}

	r.Route("/api", func(api chi.Router) {
		if opts.Admin != nil {
			api.Mount("/admin", opts.Admin.Handle())
		}
		if opts.Books != nil {
			api.Mount("/", opts.Books.Handle())
		}
	})

	return r
}
