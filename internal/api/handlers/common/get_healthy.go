package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/splitpot/go-relay/internal/api"
)

// GetHealthyRoute is the liveness probe, it only proves the process serves
// HTTP. Use the readiness probe to check component wiring.
func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

func getHealthyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.String(http.StatusOK, "OK.")
	}
}
