package address

import "github/splitpot/go-relay/internal/ledger"

// Derivation records how an address was obtained, so downstream lookups can
// tell a canonical derivation from the degraded padded fallback and repeat
// them once a real public key becomes available.
type Derivation int

const (
	// DerivationFromPublicKey is the canonical public-key transform.
	DerivationFromPublicKey Derivation = iota
	// DerivationPadded is the degraded zero-padded short-form fallback.
	DerivationPadded
)

func (d Derivation) String() string {
	switch d {
	case DerivationFromPublicKey:
		return "public_key"
	case DerivationPadded:
		return "padded"
	default:
		return "unknown"
	}
}

// Derived is an address together with its provenance.
type Derived struct {
	Address    ledger.Address
	Derivation Derivation
}
