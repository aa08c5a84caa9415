package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/config"
)

// GetVersionRoute exposes the build arguments baked in at compile time.
func GetVersionRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/version", getVersionHandler(s))
}

func getVersionHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, config.GetFormattedBuildArgs())
	}
}
