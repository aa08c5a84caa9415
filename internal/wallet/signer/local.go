package signer

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/wallet/source"
)

// signLocal signs the envelope with the locally held private key. No network
// call; fails only on malformed key material.
func (s *service) signLocal(identity *source.Identity, env *ledger.UnsignedEnvelope) (*ledger.SignedEnvelope, error) {
	if len(identity.LocalPrivateKey) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("local private key has length %d, want %d", len(identity.LocalPrivateKey), ed25519.PrivateKeySize)
	}

	message, err := env.SigningMessage()
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute signing message")
	}

	raw, err := env.Raw.Encode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode raw transaction")
	}

	signature := ed25519.Sign(identity.LocalPrivateKey, message)
	publicKey := identity.LocalPrivateKey.Public().(ed25519.PublicKey)

	return &ledger.SignedEnvelope{
		RawTransactionBytes: raw,
		AuthenticatorBytes:  ledger.NewEd25519Authenticator(publicKey, signature),
	}, nil
}
