package wallet

import (
	"context"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/util"
)

// Await blocks until the transaction reaches finality. A VM rejection is a
// completed transaction with Success=false, it is not an error: the caller
// decides how to surface a business-level failure.
func (s *service) Await(ctx context.Context, hash string) (*Receipt, error) {
	result, err := s.ledger.WaitForTransaction(ctx, hash)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to await transaction %s", hash)
	}

	receipt := &Receipt{
		Hash:      hash,
		Confirmed: !result.Pending,
		Success:   result.Success,
		VMStatus:  result.VMStatus,
	}

	if receipt.Confirmed && !receipt.Success {
		util.LogFromContext(ctx).Warn().
			Str("hash", hash).
			Str("vm_status", result.VMStatus).
			Msg("Transaction rejected by ledger VM")
	}

	return receipt, nil
}
