package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/api/httperrors"
	"github/splitpot/go-relay/internal/types"
	"github/splitpot/go-relay/internal/util"
	"github/splitpot/go-relay/internal/wallet"
)

// GetWalletIdentityRoute resolves and returns the session's signing identity.
func GetWalletIdentityRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Wallet.GET("", getWalletIdentityHandler(s))
}

func getWalletIdentityHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		identity, err := s.Wallet.ResolveIdentity(ctx)
		if err != nil {
			if errors.Is(err, wallet.ErrNoWalletAvailable) {
				return httperrors.ErrServiceUnavailableNoWallet
			}

			log.Warn().Err(err).Msg("Failed to resolve wallet identity")

			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.WalletIdentityResponse{
			Address:    identity.Address.Hex(),
			Source:     identity.Source.String(),
			Derivation: identity.Derivation.String(),
		})
	}
}
