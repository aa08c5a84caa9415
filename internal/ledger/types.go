package ledger

import (
	"context"

	"github.com/pkg/errors"
)

// Client is the fullnode interface consumed by the builder, the direct
// submission path and the confirmation waiter.
type Client interface {
	// Account fetches the live account state of the given address.
	Account(ctx context.Context, addr Address) (*AccountInfo, error)

	// ChainID returns the network's chain id (cached after first fetch).
	ChainID(ctx context.Context) (uint8, error)

	// EstimateGasPrice returns the current gas unit price estimate.
	EstimateGasPrice(ctx context.Context) (uint64, error)

	// SubmitTransaction submits a signed transaction, sender-paid.
	SubmitTransaction(ctx context.Context, signed *SignedEnvelope) (string, error)

	// TransactionByHash fetches the current state of a transaction.
	TransactionByHash(ctx context.Context, hash string) (*TransactionResult, error)

	// WaitForTransaction blocks until the transaction reaches finality or the
	// configured wait timeout elapses.
	WaitForTransaction(ctx context.Context, hash string) (*TransactionResult, error)
}

// AccountInfo is the on-chain account state needed to build a transaction.
type AccountInfo struct {
	SequenceNumber    uint64
	AuthenticationKey string
}

// TransactionResult is the observed state of a submitted transaction.
type TransactionResult struct {
	Hash     string
	Pending  bool
	Success  bool
	VMStatus string
}

// ErrAccountNotFound marks a sender the ledger has not indexed yet, common
// for brand-new accounts. Only this failure is retried by the builder.
var ErrAccountNotFound = errors.New("account not found on ledger")

// IsAccountNotFound reports whether err is (or wraps) ErrAccountNotFound.
func IsAccountNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}
