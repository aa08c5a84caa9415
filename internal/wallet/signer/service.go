package signer

import (
	"context"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/remote"
	"github/splitpot/go-relay/internal/wallet/source"
)

type service struct {
	provider remote.Provider
	keyCache KeyCache
}

// NewService creates a new signer Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(provider remote.Provider, keyCache KeyCache) (Service, error) {
	return &service{
		provider: provider,
		keyCache: keyCache,
	}, nil
}

// Sign dispatches on the identity's source tag.
func (s *service) Sign(ctx context.Context, identity *source.Identity, env *ledger.UnsignedEnvelope) (*ledger.SignedEnvelope, error) {
	if identity == nil {
		return nil, ErrNoSource
	}

	switch identity.Source {
	case source.SourceLocal:
		return s.signLocal(identity, env)
	case source.SourceRemote:
		return s.signRemote(ctx, identity, env)
	case source.SourceNone:
		return nil, ErrNoSource
	default:
		return nil, errors.Errorf("unknown wallet source %d", identity.Source)
	}
}
