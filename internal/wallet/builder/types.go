package builder

import (
	"context"

	"github/splitpot/go-relay/internal/ledger"
)

// Service assembles unsigned transaction envelopes against the live state of
// the target ledger.
type Service interface {
	// Build produces a fresh envelope for the sender. The envelope embeds a
	// live sequence number and must not be reused across submission attempts.
	// feePayer marks the envelope for sponsored submission; without it a
	// relay cannot append its own authenticator.
	Build(ctx context.Context, sender ledger.Address, payload ledger.EntryFunction, feePayer bool) (*ledger.UnsignedEnvelope, error)
}
