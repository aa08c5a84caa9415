package source

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/util"
	"github/splitpot/go-relay/internal/wallet/address"
)

// Resolver owns the session's wallet source decision. The decision is made
// once (Unset -> Remote|Local) and then locked: a later snapshot that would
// select the other source is rejected, because switching mid-session would
// split the user's on-chain footprint across two addresses. Only an explicit
// Reset (logout) clears the lock.
type Resolver struct {
	mu       sync.Mutex
	locked   bool
	identity Identity
}

// NewResolver returns an unlocked resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve decides the authoritative signing backend for the given snapshot.
// It is idempotent and safe to call on every upstream auth state change.
// Returns nil while no backend is selectable.
func (r *Resolver) Resolve(ctx context.Context, snap Snapshot) (*Identity, error) {
	log := util.LogFromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	candidate := r.candidateSource(snap)

	if r.locked {
		if candidate == SourceNone || candidate == r.identity.Source {
			if candidate == r.identity.Source {
				// same-source re-resolution refreshes key material only
				if err := r.refreshLocked(snap); err != nil {
					return nil, err
				}
			}

			return r.snapshotIdentity(), nil
		}

		log.Warn().
			Str("locked_source", r.identity.Source.String()).
			Str("rejected_source", candidate.String()).
			Msg("Rejecting wallet source switch, session keeps its original backend")

		return r.snapshotIdentity(), nil
	}

	if candidate == SourceNone {
		return nil, nil
	}

	identity, err := buildIdentity(candidate, snap)
	if err != nil {
		return nil, err
	}

	r.warnOnAddressConflict(ctx, snap)

	r.identity = *identity
	r.locked = true

	log.Info().
		Str("source", identity.Source.String()).
		Str("address", identity.Address.Hex()).
		Str("derivation", identity.Derivation.String()).
		Msg("Wallet source locked for session")

	return r.snapshotIdentity(), nil
}

// Current returns the locked identity, or nil when unresolved.
func (r *Resolver) Current() *Identity {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.locked {
		return nil
	}

	return r.snapshotIdentity()
}

// UpdateRemotePublicKey installs a freshly observed signing public key for a
// remote-locked identity and re-derives the canonical address from it. Used
// when the raw-sign call returns a key that differs from the cached one.
func (r *Resolver) UpdateRemotePublicKey(ctx context.Context, pub ed25519.PublicKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.locked || r.identity.Source != SourceRemote {
		return errors.New("no remote identity to update")
	}

	derived, err := address.FromPublicKey(pub)
	if err != nil {
		return errors.Wrap(err, "failed to derive address from refreshed public key")
	}

	log := util.LogFromContext(ctx)
	if !derived.Address.IsZero() && derived.Address != r.identity.Address {
		log.Warn().
			Str("previous", r.identity.Address.Hex()).
			Str("refreshed", derived.Address.Hex()).
			Msg("Refreshed remote public key maps to a different address")
	}

	r.identity.RemotePublicKey = append(ed25519.PublicKey(nil), pub...)
	r.identity.Address = derived.Address
	r.identity.Derivation = derived.Derivation

	return nil
}

// Reset clears the source lock back to Unset. Called on explicit logout.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.locked = false
	r.identity = Identity{}
}

func (r *Resolver) candidateSource(snap Snapshot) Source {
	// remote always takes priority over local when both are present, to
	// avoid ever operating two wallets for one user
	if snap.RemoteAvailable && snap.RemoteAuthenticated {
		return SourceRemote
	}

	if snap.LocalAvailable {
		return SourceLocal
	}

	return SourceNone
}

func (r *Resolver) refreshLocked(snap Snapshot) error {
	switch r.identity.Source {
	case SourceRemote:
		if snap.RemoteWalletID != "" {
			r.identity.RemoteWalletID = snap.RemoteWalletID
		}

		if len(snap.RemotePublicKey) > 0 {
			derived, err := address.FromPublicKey(snap.RemotePublicKey)
			if err != nil {
				return errors.Wrap(err, "failed to derive address from refreshed public key")
			}

			r.identity.RemotePublicKey = append(ed25519.PublicKey(nil), snap.RemotePublicKey...)
			r.identity.Address = derived.Address
			r.identity.Derivation = derived.Derivation
		}
	case SourceLocal:
		if len(snap.LocalPrivateKey) > 0 {
			identity, err := buildIdentity(SourceLocal, snap)
			if err != nil {
				return err
			}
			r.identity = *identity
		}
	case SourceNone:
	}

	return nil
}

func (r *Resolver) snapshotIdentity() *Identity {
	identity := r.identity

	return &identity
}

// warnOnAddressConflict surfaces the case where both backends expose
// credentials but produce different normalized addresses. This is logged,
// not resolved: the remote address wins and prior activity recorded under
// the local address may not be found.
func (r *Resolver) warnOnAddressConflict(ctx context.Context, snap Snapshot) {
	if !(snap.RemoteAvailable && snap.RemoteAuthenticated && snap.LocalAvailable) {
		return
	}

	remote, err := remoteDerived(snap)
	if err != nil {
		return
	}

	if len(snap.LocalPrivateKey) != ed25519.PrivateKeySize {
		return
	}

	local, err := address.FromPublicKey(snap.LocalPrivateKey.Public().(ed25519.PublicKey))
	if err != nil {
		return
	}

	if remote.Address != local.Address {
		util.LogFromContext(ctx).Warn().
			Str("remote_address", remote.Address.Hex()).
			Str("local_address", local.Address.Hex()).
			Msg("Remote and local wallets resolve to different addresses, proceeding with remote")
	}
}

func buildIdentity(src Source, snap Snapshot) (*Identity, error) {
	switch src {
	case SourceRemote:
		derived, err := remoteDerived(snap)
		if err != nil {
			return nil, err
		}

		return &Identity{
			Address:         derived.Address,
			Derivation:      derived.Derivation,
			Source:          SourceRemote,
			RemoteWalletID:  snap.RemoteWalletID,
			RemotePublicKey: append(ed25519.PublicKey(nil), snap.RemotePublicKey...),
		}, nil
	case SourceLocal:
		if len(snap.LocalPrivateKey) != ed25519.PrivateKeySize {
			return nil, errors.New("local private key is malformed")
		}

		derived, err := address.FromPublicKey(snap.LocalPrivateKey.Public().(ed25519.PublicKey))
		if err != nil {
			return nil, err
		}

		return &Identity{
			Address:         derived.Address,
			Derivation:      derived.Derivation,
			Source:          SourceLocal,
			LocalPrivateKey: append(ed25519.PrivateKey(nil), snap.LocalPrivateKey...),
		}, nil
	default:
		return nil, errors.New("cannot build identity without a source")
	}
}

func remoteDerived(snap Snapshot) (address.Derived, error) {
	if len(snap.RemotePublicKey) > 0 {
		return address.FromPublicKey(snap.RemotePublicKey)
	}

	if snap.RemoteShortAddress != "" {
		return address.PadShortForm(snap.RemoteShortAddress)
	}

	return address.Derived{}, errors.New("remote wallet exposes neither a public key nor an address")
}
