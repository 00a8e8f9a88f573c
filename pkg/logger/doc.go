// Package logger builds *slog.Logger instances with environment-aware
// defaults and a small vocabulary of attribute helpers.
//
// Development loggers emit debug-level text; staging and production emit
// info-level JSON. Request-scoped values such as the request id are added
// at log time by context extractors:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "bookshelf"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "signed in", logger.UserID(u.ID), logger.Role(u.Role))
package logger
