// Package logger builds *slog.Logger instances with environment presets,
// attribute helpers and values injected from context.Context.
//
// New creates a text or JSON handler, applies static attributes and wraps it
// with LogHandlerDecorator, which runs every registered ContextExtractor on
// each record. This is how request IDs and the environment name reach log
// lines without being passed around explicitly.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "magic link sent",
//	    logger.Email(email),
//	    logger.Purpose("login"),
//	)
//
// # Attributes
//
// Helpers in attr.go keep key names consistent. Email masks the local part of
// the address. Error returns an empty attribute for a nil error, so it can be
// passed unconditionally.
//
// # HTTP
//
// Middleware writes one record per request with method, path, status and
// duration, and recovers panics into 500 responses.
package logger
