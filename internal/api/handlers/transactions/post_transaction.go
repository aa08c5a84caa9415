package transactions

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/api/httperrors"
	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/types"
	"github/splitpot/go-relay/internal/util"
	"github/splitpot/go-relay/internal/wallet"
)

// PostTransactionRoute submits an entry function call through the sponsored
// transaction pipeline.
func PostTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Transactions.POST("", postTransactionHandler(s))
}

func postTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		args, err := ledger.EncodeArguments(body.Arguments)
		if err != nil {
			return httperrors.ErrBadRequestInvalidPayload.WithInternal(err)
		}

		payload := ledger.EntryFunction{
			Function:      body.Function,
			TypeArguments: body.TypeArguments,
			Arguments:     args,
		}

		var receipt *wallet.Receipt
		if util.FalseIfNil(body.Wait) {
			receipt, err = s.Wallet.SubmitAndWait(ctx, payload)
		} else {
			receipt, err = s.Wallet.Submit(ctx, payload)
		}

		if err != nil {
			if errors.Is(err, wallet.ErrNoWalletAvailable) {
				return httperrors.ErrServiceUnavailableNoWallet
			}

			log.Warn().Err(err).Msg("Transaction submission failed")

			return httperrors.ErrBadGatewaySubmission.WithInternal(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.TransactionResponse{
			Hash:      receipt.Hash,
			Sponsored: receipt.Sponsored,
			Confirmed: receipt.Confirmed,
			Success:   receipt.Success,
			VMStatus:  receipt.VMStatus,
		})
	}
}
