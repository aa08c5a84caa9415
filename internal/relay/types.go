package relay

import (
	"context"

	"github/splitpot/go-relay/internal/ledger"
)

// Service submits signed envelopes to the gas sponsorship relay.
type Service interface {
	// SubmitSponsored sends the envelope to the relay, which co-signs as fee
	// payer and forwards it to the ledger. Transient failures are retried
	// internally up to the configured bound; the one-shot direct-submission
	// fallback is the caller's responsibility.
	SubmitSponsored(ctx context.Context, signed *ledger.SignedEnvelope) (*PendingTransaction, error)
}

// PendingTransaction is a successfully relayed transaction awaiting finality.
type PendingTransaction struct {
	Hash string
}

// rpcMethodSponsorAndSubmit is the relay's JSON-RPC method.
const rpcMethodSponsorAndSubmit = "gas_sponsorAndSubmitSignedTransaction"

type rpcRequest struct {
	JSONRPC string   `json:"jsonrpc"`
	ID      int      `json:"id"`
	Method  string   `json:"method"`
	Params  []string `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result *struct {
		PendingTransaction *struct {
			Hash string `json:"hash"`
		} `json:"pendingTransaction"`
	} `json:"result"`
	Error *rpcError `json:"error"`
}
