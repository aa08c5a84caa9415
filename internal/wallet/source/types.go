package source

import (
	"crypto/ed25519"

	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/wallet/address"
)

// Source tags the signing backend an identity is bound to.
type Source int

const (
	// SourceNone means no backend has been resolved yet.
	SourceNone Source = iota
	// SourceRemote is the embedded-wallet remote signer backend.
	SourceRemote
	// SourceLocal is a locally held private key.
	SourceLocal
)

func (s Source) String() string {
	switch s {
	case SourceRemote:
		return "remote"
	case SourceLocal:
		return "local"
	default:
		return "none"
	}
}

// Identity binds the session to exactly one signing backend. The address is
// a pure function of (source, key material): the address used to look up a
// user's data always equals the address that signs their transactions.
type Identity struct {
	Address    ledger.Address
	Derivation address.Derivation
	Source     Source

	// Remote backend key material.
	RemoteWalletID  string
	RemotePublicKey ed25519.PublicKey

	// Local backend key material.
	LocalPrivateKey ed25519.PrivateKey
}

// Snapshot is the upstream auth state observed at one point in time. The
// resolver is called repeatedly with fresh snapshots as providers report
// availability asynchronously.
type Snapshot struct {
	RemoteAvailable     bool
	RemoteAuthenticated bool
	RemoteWalletID      string
	RemotePublicKey     ed25519.PublicKey
	// RemoteShortAddress is the provider-reported address used for the padded
	// fallback when no public key is available yet.
	RemoteShortAddress string

	LocalAvailable  bool
	LocalPrivateKey ed25519.PrivateKey
}
