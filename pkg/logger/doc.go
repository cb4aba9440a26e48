// Package logger builds the *slog.Logger used across formguard and provides
// helper constructors for the attributes validation code logs.
//
// New applies a list of Option values to a production-safe default (JSON,
// info level, stdout) and wraps the resulting handler so that attributes
// stored in a context.Context are added to every record logged with a
// *Context method.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(os.Getenv("APP_ENV"), "signup"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.DebugContext(ctx, "field invalid",
//	    logger.Form("signup"),
//	    logger.Field("email"),
//	    logger.Rule("required"),
//	)
//
// Discard returns a logger that drops everything; it is the default for
// components that accept an optional logger.
package logger
