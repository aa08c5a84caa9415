package router

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/api/handlers"
	"github/splitpot/go-relay/internal/api/httperrors"
	"github/splitpot/go-relay/internal/api/middlewares"
)

// Init attaches the echo instance, middlewares and all routes to the server.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Logger.SetOutput(&echoLogger{})

	s.Echo.HTTPErrorHandler = httperrors.HandlerWithConfig(httperrors.HandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(middleware.Recover())
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(middleware.RequestID())
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middlewares.Logger(s.Config.Logger.RequestLevel))
	}

	s.Echo.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: s.Metrics.Registry,
	}))

	s.Router = &api.Router{
		Routes: nil, // will be populated by handlers.AttachAllRoutes(s)

		Root:              s.Echo.Group(""),
		Management:        s.Echo.Group("/-"),
		APIV1Transactions: s.Echo.Group("/api/v1/transactions"),
		APIV1Wallet:       s.Echo.Group("/api/v1/wallet"),
	}

	handlers.AttachAllRoutes(s)
}

// echoLogger silences echo's own logger, zerolog handles all request logging.
type echoLogger struct{}

func (l *echoLogger) Write(p []byte) (int, error) {
	return len(p), nil
}
