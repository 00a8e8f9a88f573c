package auth

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hustwenchao/bookshelf/binder"
	"github.com/hustwenchao/bookshelf/handler"
	"github.com/hustwenchao/bookshelf/pkg/cookie"
	"github.com/hustwenchao/bookshelf/pkg/environment"
	"github.com/hustwenchao/bookshelf/pkg/logger"
)

const (
	stateCookieName = "oauth_state"
	defaultStateTTL = 10 * time.Minute
)

// Error codes appended to the sign-in error page.
const (
	codeInvalidState   = "invalid_state"
	codeAccessDenied   = "access_denied"
	codeExchangeFailed = "exchange_failed"
	codeMissingEmail   = "missing_email"
	codeUnverified     = "unverified_email"
	codeInternal       = "internal"
)

type oauthState struct {
	State    string `json:"state"`
	Provider string `json:"provider"`
}

// Handler serves the /auth routes and the admin self-promotion endpoint.
type Handler struct {
	svc         *Service
	sessions    *SessionManager
	guard       *Guard
	cookies     *cookie.Manager
	successPage string
	errorPage   string
	stateTTL    time.Duration
	logger      *slog.Logger
	errHandler  handler.ErrorHandler[handler.Context]
}

type HandlerOption func(*Handler)

// WithSuccessPage sets the redirect target after a successful sign-in.
func WithSuccessPage(u string) HandlerOption {
	return func(h *Handler) {
		if u != "" {
			h.successPage = u
		}
	}
}

// WithErrorPage sets the redirect target for failed sign-ins. The failure
// code is appended as the "error" query parameter.
func WithErrorPage(u string) HandlerOption {
	return func(h *Handler) {
		if u != "" {
			h.errorPage = u
		}
	}
}

func WithStateTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		if ttl > 0 {
			h.stateTTL = ttl
		}
	}
}

func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

func NewHandler(svc *Service, sessions *SessionManager, guard *Guard, cookies *cookie.Manager, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:         svc,
		sessions:    sessions,
		guard:       guard,
		cookies:     cookies,
		successPage: "/",
		errorPage:   "/auth/error",
		stateTTL:    defaultStateTTL,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.errHandler = handler.NewErrorHandler[handler.Context](h.logger)
	return h
}

// Handle returns the router mounted at /auth.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/{provider}/login", handler.Wrap(h.login,
		handler.WithBinders[handler.Context, loginRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, loginRequest](h.errHandler),
	))
	r.Get("/{provider}/callback", handler.Wrap(h.callback,
		handler.WithBinders[handler.Context, callbackRequest](binder.Path(chi.URLParam), binder.BindQuery()),
		handler.WithErrorHandler[handler.Context, callbackRequest](h.errHandler),
	))
	r.Post("/signout", handler.Wrap(h.signout))
	r.With(h.guard.RequireSession).Get("/session", handler.Wrap(h.session))

	return r
}

// AdminHandle returns the router mounted at /api/admin.
func (h *Handler) AdminHandle() http.Handler {
	r := chi.NewRouter()
	r.With(
		h.guard.RequireSession,
		h.guard.RequireEnvironment(environment.Development),
	).Post("/set", handler.Wrap(h.promote,
		handler.WithErrorHandler[handler.Context, struct{}](h.errHandler),
	))
	return r
}

type loginRequest struct {
	Provider string `path:"provider"`
}

func (h *Handler) login(ctx handler.Context, req loginRequest) handler.Response {
	authURL, state, err := h.svc.LoginURL(req.Provider)
	if err != nil {
		if errors.Is(err, ErrUnknownProvider) {
			return handler.JSONError(handler.ErrNotFound.WithMessage("unknown identity provider"))
		}
		return handler.JSONError(err)
	}

	if err := h.cookies.SetJSON(ctx.ResponseWriter(), stateCookieName,
		oauthState{State: state, Provider: req.Provider},
		cookie.WithMaxAge(int(h.stateTTL.Seconds())),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	); err != nil {
		return handler.JSONError(err)
	}

	return handler.Redirect(authURL)
}

type callbackRequest struct {
	Provider string `path:"provider"`
	Code     string `query:"code"`
	State    string `query:"state"`
	Error    string `query:"error"`
}

func (h *Handler) callback(ctx handler.Context, req callbackRequest) handler.Response {
	var saved oauthState
	stateErr := h.cookies.GetJSON(ctx.Request(), stateCookieName, &saved)
	h.cookies.Delete(ctx.ResponseWriter(), stateCookieName)

	log := h.logger.With(logger.Provider(req.Provider))

	if req.Error != "" {
		log.InfoContext(ctx, "provider denied authorization", slog.String("provider_error", req.Error))
		return h.failSignIn(codeAccessDenied)
	}
	if stateErr != nil || req.State == "" || req.Code == "" ||
		saved.Provider != req.Provider ||
		subtle.ConstantTimeCompare([]byte(saved.State), []byte(req.State)) != 1 {
		log.WarnContext(ctx, "oauth state mismatch", logger.Error(errors.Join(ErrInvalidState, stateErr)))
		return h.failSignIn(codeInvalidState)
	}

	token, _, err := h.svc.SignIn(ctx, req.Provider, req.Code)
	if err != nil {
		return h.failSignIn(signInErrorCode(err))
	}

	h.sessions.SetCookie(ctx.ResponseWriter(), token)
	return handler.Redirect(h.successPage)
}

func (h *Handler) failSignIn(code string) handler.Response {
	u, err := url.Parse(h.errorPage)
	if err != nil {
		return handler.Redirect(h.errorPage)
	}
	q := u.Query()
	q.Set("error", code)
	u.RawQuery = q.Encode()
	return handler.Redirect(u.String())
}

func signInErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownProvider), errors.Is(err, ErrInvalidState):
		return codeInvalidState
	case errors.Is(err, ErrIdentityExchange):
		return codeExchangeFailed
	case errors.Is(err, ErrMissingEmail):
		return codeMissingEmail
	case errors.Is(err, ErrUnverifiedEmail):
		return codeUnverified
	default:
		return codeInternal
	}
}

func (h *Handler) signout(ctx handler.Context, _ struct{}) handler.Response {
	h.sessions.ClearCookie(ctx.ResponseWriter())
	return handler.NoContent()
}

func (h *Handler) session(ctx handler.Context, _ struct{}) handler.Response {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return handler.JSONError(errUnauthorized)
	}
	return handler.JSON(s)
}

type promoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) promote(ctx handler.Context, _ struct{}) handler.Response {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return handler.JSONError(errUnauthorized)
	}

	switch err := h.svc.PromoteSelf(ctx, s); {
	case errors.Is(err, ErrUserNotFound):
		return handler.JSONError(handler.ErrNotFound.WithMessage("User not found"))
	case errors.Is(err, ErrSelfPromotionDisabled):
		return handler.JSONError(handler.ErrForbidden.WithMessage(err.Error()))
	case errors.Is(err, ErrMissingSession):
		return handler.JSONError(errUnauthorized)
	case err != nil:
		return handler.JSONError(err)
	}

	return handler.JSON(promoteResponse{Success: true, Message: "User role updated to admin"})
}
