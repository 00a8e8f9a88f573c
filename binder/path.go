package binder

import (
	"fmt"
	"net/http"
)

// Path fills fields tagged `path:"name"` using extractor, typically
// chi.URLParam.
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		return bindFields(v, "path", func(name string) (string, bool) {
			val := extractor(r, name)
			return val, val != ""
		}, ErrInvalidPath)
	}
}
