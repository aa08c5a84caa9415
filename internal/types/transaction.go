package types

import (
	"strings"

	"github.com/pkg/errors"
)

// PostTransactionPayload is the submission request body.
type PostTransactionPayload struct {
	// Function is the fully qualified entry function, e.g.
	// "0x1::aptos_account::transfer".
	Function      string   `json:"function"`
	TypeArguments []string `json:"typeArguments"`
	Arguments     []any    `json:"arguments"`

	// Wait blocks the request until the transaction reaches finality.
	Wait *bool `json:"wait,omitempty"`
}

// Validate checks the payload before it reaches the pipeline.
func (p *PostTransactionPayload) Validate() error {
	if p.Function == "" {
		return errors.New("function is required")
	}

	//nolint:mnd // address::module::name has exactly 3 segments
	if len(strings.Split(p.Function, "::")) != 3 {
		return errors.New("function must be of the form address::module::name")
	}

	return nil
}

// TransactionResponse is the submission and lookup response body.
type TransactionResponse struct {
	Hash      string `json:"hash"`
	Sponsored bool   `json:"sponsored"`
	Confirmed bool   `json:"confirmed"`
	Success   bool   `json:"success"`
	VMStatus  string `json:"vmStatus,omitempty"`
}

// WalletIdentityResponse describes the session's resolved signing identity.
type WalletIdentityResponse struct {
	Address    string `json:"address"`
	Source     string `json:"source"`
	Derivation string `json:"derivation"`
}
