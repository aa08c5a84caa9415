package remote

import "context"

// Provider is the embedded-wallet service boundary. It is deliberately a
// single normalizing contract: callers receive a typed wallet shape and never
// probe provider-specific fields.
type Provider interface {
	// GetWallet fetches the wallet's address and, when the provider exposes
	// it, the signing public key.
	GetWallet(ctx context.Context, walletID string) (*Wallet, error)

	// RawSign signs the given message with the provider-held key and returns
	// the signature plus the public key that produced it, if reported.
	RawSign(ctx context.Context, walletID string, message []byte) (*RawSignature, error)
}

// Wallet is the normalized remote wallet shape.
type Wallet struct {
	Address   string
	PublicKey []byte // nil when the provider has not revealed it yet
}

// RawSignature is the result of a raw-sign call.
type RawSignature struct {
	Signature []byte
	PublicKey []byte // nil when the provider did not echo the key
}
