package util

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CtxKey is our custom context key type to prevent collisions with other packages.
type CtxKey int

const (
	// CtxKeyLogger is the context key for the request-scoped logger.
	CtxKeyLogger CtxKey = iota
)

// LogFromContext returns the request-scoped logger from the context if one
// exists, otherwise the global logger.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &log.Logger
	}

	return l
}

// LogFromEchoContext returns the request-scoped logger from the echo context.
func LogFromEchoContext(c echo.Context) *zerolog.Logger {
	return LogFromContext(c.Request().Context())
}

// WithLogger attaches the given logger to the context.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}
