// Package binder populates request structs from the JSON body, the query
// string and router path parameters. Binders are composed by handler.Wrap
// and run in order; a binder that does not apply to a request returns
// ErrBinderNotApplicable and is skipped.
package binder
