package httperrors

import (
	"net/http"

	"github/splitpot/go-relay/internal/types"
)

var (
	ErrBadRequestInvalidPayload   = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidPayload, "The transaction payload is malformed.")
	ErrNotFoundTransaction        = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Transaction not found.")
	ErrServiceUnavailableNoWallet = NewHTTPError(http.StatusServiceUnavailable, types.PublicHTTPErrorTypeNoWalletAvailable, "No wallet backend is available for this session.")
	ErrBadGatewaySubmission       = NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeTransactionFailed, "Transaction submission failed.")
)
