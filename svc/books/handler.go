package books

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hustwenchao/bookshelf/binder"
	"github.com/hustwenchao/bookshelf/handler"
	"github.com/hustwenchao/bookshelf/pkg/logger"
)

// Handler serves the catalog routes mounted under /api.
type Handler struct {
	svc         *Service
	middlewares []func(http.Handler) http.Handler
	errHandler  handler.ErrorHandler[handler.Context]
}

type HandlerOption func(*Handler)

// WithMiddleware runs mw in front of every catalog route, typically the
// session guard.
func WithMiddleware(mw ...func(http.Handler) http.Handler) HandlerOption {
	return func(h *Handler) { h.middlewares = append(h.middlewares, mw...) }
}

func WithHandlerLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.errHandler = handler.NewErrorHandler[handler.Context](l)
		}
	}
}

func NewHandler(svc *Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:        svc,
		errHandler: handler.NewErrorHandler[handler.Context](logger.Discard()),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(h.middlewares...)

	r.Get("/search", handler.Wrap(h.search,
		handler.WithBinders[handler.Context, searchRequest](binder.BindQuery()),
		handler.WithErrorHandler[handler.Context, searchRequest](h.errHandler),
	))
	r.Post("/books/add", handler.Wrap(h.add,
		handler.WithBinders[handler.Context, AddInput](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, AddInput](h.errHandler),
	))
	r.Put("/books/update", handler.Wrap(h.update,
		handler.WithBinders[handler.Context, UpdateInput](binder.BindJSON()),
		handler.WithErrorHandler[handler.Context, UpdateInput](h.errHandler),
	))
	r.Get("/count", handler.Wrap(h.count,
		handler.WithErrorHandler[handler.Context, struct{}](h.errHandler),
	))

	return r
}

type searchRequest struct {
	Query string `query:"q"`
}

type searchResponse struct {
	Results []Book `json:"results"`
}

func (h *Handler) search(ctx handler.Context, req searchRequest) handler.Response {
	results, err := h.svc.Search(ctx, req.Query)
	if err != nil {
		return handler.JSONError(err)
	}
	if results == nil {
		results = []Book{}
	}
	return handler.JSON(searchResponse{Results: results})
}

type addResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type duplicateResponse struct {
	Status     string `json:"status"`
	Duplicates []Book `json:"duplicates"`
	Message    string `json:"message"`
}

func (h *Handler) add(ctx handler.Context, req AddInput) handler.Response {
	id, err := h.svc.Add(ctx, req)
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return handler.JSON(duplicateResponse{
			Status:     "duplicate",
			Duplicates: dup.Duplicates,
			Message:    "Similar books found in database",
		}, http.StatusConflict)
	}
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(addResponse{Success: true, ID: id.Hex()})
}

type updateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) update(ctx handler.Context, req UpdateInput) handler.Response {
	switch err := h.svc.Update(ctx, req); {
	case errors.Is(err, ErrBookNotFound):
		return handler.JSONError(handler.ErrNotFound.WithMessage("Book not found"))
	case errors.Is(err, ErrInvalidID):
		return handler.JSONError(handler.ErrBadRequest.WithMessage("Invalid book ID"))
	case err != nil:
		return handler.JSONError(err)
	}
	return handler.JSON(updateResponse{Success: true, Message: "Book updated successfully"})
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (h *Handler) count(ctx handler.Context, _ struct{}) handler.Response {
	n, err := h.svc.Count(ctx)
	if err != nil {
		return handler.JSONError(err)
	}
	return handler.JSON(countResponse{Count: n})
}
