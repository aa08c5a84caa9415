package handlers

import (
	"github.com/labstack/echo/v4"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/api/handlers/common"
	"github/splitpot/go-relay/internal/api/handlers/transactions"
	"github/splitpot/go-relay/internal/api/handlers/wallet"
)

// AttachAllRoutes attaches all registered routes to the server.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		common.GetMetricsRoute(s),
		transactions.PostTransactionRoute(s),
		transactions.GetTransactionRoute(s),
		wallet.GetWalletIdentityRoute(s),
	}
}
