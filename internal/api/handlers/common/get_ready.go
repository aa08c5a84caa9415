package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/splitpot/go-relay/internal/api"
)

// statusNotReady is in the cloudflare 52x range so load balancers never
// confuse it with an application-level 5xx.
const statusNotReady = 521

// GetReadyRoute is the readiness probe, it fails while any server component
// is not initialized.
func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(statusNotReady, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
