package signer

import (
	"context"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/wallet/source"
)

// Service produces a signed envelope for the backend the identity is bound
// to. Signing never crosses backends: a remote identity that cannot sign
// fails hard instead of falling back to a locally held key.
type Service interface {
	Sign(ctx context.Context, identity *source.Identity, env *ledger.UnsignedEnvelope) (*ledger.SignedEnvelope, error)
}

// KeyCache receives freshly observed remote signing keys so later calls skip
// the wallet lookup. Satisfied by *source.Resolver.
type KeyCache interface {
	UpdateRemotePublicKey(ctx context.Context, pub ed25519.PublicKey) error
}

var (
	// ErrNoSource is returned when signing is attempted without a resolved
	// backend. This is a programming error, never retried.
	ErrNoSource = errors.New("signing requires a resolved wallet source")

	// ErrNoRemotePublicKey is returned when the remote backend cannot produce
	// a signing public key by any means. Fatal: falling back to the local key
	// would sign with the wrong identity.
	ErrNoRemotePublicKey = errors.New("no signing public key available for remote wallet")
)
