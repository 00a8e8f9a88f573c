// Package environment propagates the application environment (development,
// staging, production) through context.Context, HTTP requests and
// structured logs.
//
// Parse normalizes the common spellings ("dev", "prod", "stage") into the
// Environment constants. Middleware stores the environment on every request
// context so handlers can branch on IsDevelopment without threading the
// value through constructors. LoggerExtractor exposes the value to
// logger.WithContextExtractors.
package environment
