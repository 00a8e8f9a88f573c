// Package validator composes small declarative rules into a single
// ValidationErrors value that handlers render as a 400 response.
//
//	err := validator.Apply(
//		validator.AnyRequired("name", map[string]string{"cn_name": in.CNName, "en_name": in.ENName}),
//		validator.MaxLen("author", in.Author, 200),
//	)
//	if validator.IsValidationError(err) {
//		// respond 400
//	}
package validator
