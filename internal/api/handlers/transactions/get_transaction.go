package transactions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/api/httperrors"
	"github/splitpot/go-relay/internal/types"
	"github/splitpot/go-relay/internal/util"
)

// GetTransactionRoute looks up the current state of a submitted transaction.
func GetTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transactions.GET("/:hash", getTransactionHandler(s))
}

func getTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		hash := c.Param("hash")
		if hash == "" {
			return httperrors.ErrBadRequestInvalidPayload
		}

		result, err := s.Ledger.TransactionByHash(ctx, hash)
		if err != nil {
			return httperrors.ErrNotFoundTransaction.WithInternal(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.TransactionResponse{
			Hash:      hash,
			Confirmed: !result.Pending,
			Success:   result.Success,
			VMStatus:  result.VMStatus,
		})
	}
}
