package wallet

import (
	"context"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/wallet/source"
)

// Service is the transaction pipeline: resolve the signing backend, build,
// sign, submit through the gas relay and confirm.
type Service interface {
	// ResolveIdentity resolves (or re-resolves) the session's signing
	// identity from the currently available backends.
	ResolveIdentity(ctx context.Context) (*source.Identity, error)

	// Submit runs the sponsored submission pipeline for the payload. When the
	// relay fails it falls back to exactly one direct, sender-paid
	// submission. The returned receipt is pending, not yet confirmed.
	Submit(ctx context.Context, payload ledger.EntryFunction) (*Receipt, error)

	// SubmitAndWait submits and then blocks until the transaction reaches
	// finality or the wait timeout elapses.
	SubmitAndWait(ctx context.Context, payload ledger.EntryFunction) (*Receipt, error)

	// Await blocks until the transaction with the given hash reaches
	// finality. A transaction the VM rejected yields a receipt with
	// Success=false, not an error.
	Await(ctx context.Context, hash string) (*Receipt, error)
}

// Receipt is the outcome of one logical transaction submission.
type Receipt struct {
	Hash string

	// Sponsored is false when the sponsored path failed and the transaction
	// went through the direct, sender-paid fallback.
	Sponsored bool

	// Confirmed is true once the ledger has executed the transaction.
	// Success and VMStatus are only meaningful when Confirmed is true.
	Confirmed bool
	Success   bool
	VMStatus  string
}

// ErrNoWalletAvailable is returned when neither a remote wallet nor a local
// key can serve the session.
var ErrNoWalletAvailable = errors.New("no wallet backend available")
