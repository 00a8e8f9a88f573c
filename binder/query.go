package binder

import "net/http"

// BindQuery fills fields tagged `query:"name"` from the URL query. Only the
// first value of a repeated parameter is used.
//
//	type SearchRequest struct {
//		Query string `query:"q"`
//	}
func BindQuery() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		q := r.URL.Query()
		return bindFields(v, "query", func(name string) (string, bool) {
			if !q.Has(name) {
				return "", false
			}
			return q.Get(name), true
		}, ErrInvalidQuery)
	}
}
