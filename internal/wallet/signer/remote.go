package signer

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/util"
	"github/splitpot/go-relay/internal/wallet/source"
)

// signRemote signs the envelope through the remote raw-sign API:
//  1. resolve the signing public key, preferring the one cached on the
//     identity and falling back to a wallet lookup by id
//  2. compute the canonical signing message
//  3. send it to the raw-sign endpoint
//  4. prefer the freshly returned public key over the cached one and push it
//     back into the key cache for future calls
func (s *service) signRemote(ctx context.Context, identity *source.Identity, env *ledger.UnsignedEnvelope) (*ledger.SignedEnvelope, error) {
	log := util.LogFromContext(ctx)

	cached := identity.RemotePublicKey
	if len(cached) == 0 && identity.RemoteWalletID != "" {
		wallet, err := s.provider.GetWallet(ctx, identity.RemoteWalletID)
		if err != nil {
			log.Debug().Err(err).Msg("Wallet lookup for signing public key failed")
		} else if len(wallet.PublicKey) > 0 {
			cached = wallet.PublicKey
		}
	}

	message, err := env.SigningMessage()
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute signing message")
	}

	result, err := s.provider.RawSign(ctx, identity.RemoteWalletID, message)
	if err != nil {
		return nil, errors.Wrap(err, "remote raw-sign failed")
	}

	publicKey := cached
	if len(result.PublicKey) > 0 {
		publicKey = result.PublicKey

		if len(cached) > 0 && !bytes.Equal(cached, result.PublicKey) {
			log.Warn().Msg("Cached remote public key is stale, using the key returned by raw-sign")
		}

		if s.keyCache != nil && !bytes.Equal(cached, result.PublicKey) {
			if cacheErr := s.keyCache.UpdateRemotePublicKey(ctx, ed25519.PublicKey(result.PublicKey)); cacheErr != nil {
				log.Debug().Err(cacheErr).Msg("Failed to cache refreshed remote public key")
			}
		}
	}

	if len(publicKey) == 0 {
		return nil, ErrNoRemotePublicKey
	}

	raw, err := env.Raw.Encode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode raw transaction")
	}

	return &ledger.SignedEnvelope{
		RawTransactionBytes: raw,
		AuthenticatorBytes:  ledger.NewEd25519Authenticator(publicKey, result.Signature),
	}, nil
}
