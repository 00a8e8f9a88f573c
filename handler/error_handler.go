package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hustwenchao/bookshelf/binder"
	"github.com/hustwenchao/bookshelf/pkg/logger"
	"github.com/hustwenchao/bookshelf/pkg/validator"
)

// ErrorHandler renders err for the request in ctx.
type ErrorHandler[C Context] func(ctx C, err error)

// NewErrorHandler maps errors to the JSON envelope. Unknown errors are
// logged and reported as a generic 500.
func NewErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	if log == nil {
		log = logger.Discard()
	}
	return func(ctx C, err error) {
		w := ctx.ResponseWriter()

		var httpErr HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.Code >= http.StatusInternalServerError {
				log.ErrorContext(ctx, "request failed", logger.Error(err))
			}
			WriteError(w, httpErr)
			return
		}

		if ve := validator.ExtractValidationErrors(err); ve != nil {
			_ = writeJSON(w, http.StatusBadRequest, ErrorBody{Error: ErrorDetail{
				Code:    "validation_error",
				Message: ve.First(),
				Details: ve.Fields(),
			}})
			return
		}

		switch {
		case errors.Is(err, binder.ErrUnsupportedMediaType):
			WriteError(w, ErrUnsupportedMedia.WithMessage(err.Error()))
			return
		case errors.Is(err, binder.ErrInvalidJSON),
			errors.Is(err, binder.ErrInvalidQuery),
			errors.Is(err, binder.ErrInvalidPath):
			WriteError(w, ErrBadRequest.WithMessage(err.Error()))
			return
		}

		log.ErrorContext(ctx, "request failed",
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Request().URL.Path),
			logger.Error(err),
		)
		WriteError(w, ErrInternalServerError.WithMessage("internal server error"))
	}
}
