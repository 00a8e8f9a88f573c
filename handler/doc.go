// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value populated by the
// configured binders and returns a Response. Wrap turns it into an
// http.HandlerFunc, running decorators around it and routing binding and
// rendering errors through an ErrorHandler.
//
//	type searchRequest struct {
//		Query string `query:"q"`
//	}
//
//	r.Get("/api/search", handler.Wrap(
//		func(ctx handler.Context, req searchRequest) handler.Response {
//			books, err := svc.Search(ctx, req.Query)
//			if err != nil {
//				return handler.JSONError(err)
//			}
//			return handler.JSON(books)
//		},
//		handler.WithBinders[handler.Context, searchRequest](binder.BindQuery()),
//	))
//
// Errors map to status codes as follows: HTTPError carries its own code,
// validator.ValidationErrors and binder failures become 400, anything else
// is a logged 500 with a generic message.
package handler
