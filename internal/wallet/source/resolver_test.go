package source_test

import (
	"bytes"
	"crypto/ed25519"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/splitpot/go-relay/internal/util"
	"github/splitpot/go-relay/internal/wallet/address"
	"github/splitpot/go-relay/internal/wallet/source"
)

func newLocalKey(t *testing.T) ed25519.PrivateKey {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	return priv
}

func newRemoteKey(t *testing.T) ed25519.PublicKey {
	t.Helper()

	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	return pub
}

func TestResolveSelectsLocalWhenRemoteUnavailable(t *testing.T) {
	ctx := t.Context()
	r := source.NewResolver()

	identity, err := r.Resolve(ctx, source.Snapshot{
		LocalAvailable:  true,
		LocalPrivateKey: newLocalKey(t),
	})
	require.NoError(t, err)
	require.NotNil(t, identity)

	assert.Equal(t, source.SourceLocal, identity.Source)
	assert.Equal(t, address.DerivationFromPublicKey, identity.Derivation)
	assert.False(t, identity.Address.IsZero())
}

func TestResolveRemoteTakesPriority(t *testing.T) {
	ctx := t.Context()
	r := source.NewResolver()

	identity, err := r.Resolve(ctx, source.Snapshot{
		RemoteAvailable:     true,
		RemoteAuthenticated: true,
		RemoteWalletID:      "wallet-1",
		RemotePublicKey:     newRemoteKey(t),
		LocalAvailable:      true,
		LocalPrivateKey:     newLocalKey(t),
	})
	require.NoError(t, err)
	require.NotNil(t, identity)

	assert.Equal(t, source.SourceRemote, identity.Source)
	assert.Equal(t, "wallet-1", identity.RemoteWalletID)
}

func TestResolveWarnsOnAddressConflictAndKeepsRemote(t *testing.T) {
	var logs bytes.Buffer
	ctx := util.WithLogger(t.Context(), zerolog.New(&logs))

	remotePub := newRemoteKey(t)
	remoteDerived, err := address.FromPublicKey(remotePub)
	require.NoError(t, err)

	r := source.NewResolver()
	identity, err := r.Resolve(ctx, source.Snapshot{
		RemoteAvailable:     true,
		RemoteAuthenticated: true,
		RemoteWalletID:      "wallet-1",
		RemotePublicKey:     remotePub,
		LocalAvailable:      true,
		LocalPrivateKey:     newLocalKey(t),
	})
	require.NoError(t, err)
	require.NotNil(t, identity)

	assert.Equal(t, source.SourceRemote, identity.Source)
	assert.Equal(t, remoteDerived.Address, identity.Address)
	assert.Contains(t, logs.String(), "different addresses")
	assert.Contains(t, logs.String(), "remote_address")
	assert.Contains(t, logs.String(), "local_address")
}

func TestResolveRemainsUnsetWithoutBackends(t *testing.T) {
	ctx := t.Context()
	r := source.NewResolver()

	identity, err := r.Resolve(ctx, source.Snapshot{RemoteAvailable: true})
	require.NoError(t, err)
	assert.Nil(t, identity)
	assert.Nil(t, r.Current())
}

func TestResolveLockIsStable(t *testing.T) {
	ctx := t.Context()
	r := source.NewResolver()

	remote, err := r.Resolve(ctx, source.Snapshot{
		RemoteAvailable:     true,
		RemoteAuthenticated: true,
		RemoteWalletID:      "wallet-1",
		RemotePublicKey:     newRemoteKey(t),
	})
	require.NoError(t, err)
	require.Equal(t, source.SourceRemote, remote.Source)

	// a later snapshot that would pick local is rejected
	after, err := r.Resolve(ctx, source.Snapshot{
		LocalAvailable:  true,
		LocalPrivateKey: newLocalKey(t),
	})
	require.NoError(t, err)

	assert.Equal(t, source.SourceRemote, after.Source)
	assert.Equal(t, remote.Address, after.Address)
}

func TestResolveSameSourceRefreshesKeyMaterial(t *testing.T) {
	ctx := t.Context()
	r := source.NewResolver()

	padded, err := r.Resolve(ctx, source.Snapshot{
		RemoteAvailable:     true,
		RemoteAuthenticated: true,
		RemoteWalletID:      "wallet-1",
		RemoteShortAddress:  "0xbeef",
	})
	require.NoError(t, err)
	require.Equal(t, address.DerivationPadded, padded.Derivation)

	pub := newRemoteKey(t)
	refreshed, err := r.Resolve(ctx, source.Snapshot{
		RemoteAvailable:     true,
		RemoteAuthenticated: true,
		RemoteWalletID:      "wallet-1",
		RemotePublicKey:     pub,
	})
	require.NoError(t, err)

	assert.Equal(t, source.SourceRemote, refreshed.Source)
	assert.Equal(t, address.DerivationFromPublicKey, refreshed.Derivation)
	assert.NotEqual(t, padded.Address, refreshed.Address)
}

func TestResetClearsLock(t *testing.T) {
	ctx := t.Context()
	r := source.NewResolver()

	_, err := r.Resolve(ctx, source.Snapshot{
		RemoteAvailable:     true,
		RemoteAuthenticated: true,
		RemotePublicKey:     newRemoteKey(t),
	})
	require.NoError(t, err)

	r.Reset()
	require.Nil(t, r.Current())

	identity, err := r.Resolve(ctx, source.Snapshot{
		LocalAvailable:  true,
		LocalPrivateKey: newLocalKey(t),
	})
	require.NoError(t, err)

	assert.Equal(t, source.SourceLocal, identity.Source)
}

func TestUpdateRemotePublicKey(t *testing.T) {
	ctx := t.Context()
	r := source.NewResolver()

	_, err := r.Resolve(ctx, source.Snapshot{
		RemoteAvailable:     true,
		RemoteAuthenticated: true,
		RemoteShortAddress:  "0xbeef",
	})
	require.NoError(t, err)

	fresh := newRemoteKey(t)
	require.NoError(t, r.UpdateRemotePublicKey(ctx, fresh))

	current := r.Current()
	require.NotNil(t, current)
	assert.Equal(t, []byte(fresh), []byte(current.RemotePublicKey))
	assert.Equal(t, address.DerivationFromPublicKey, current.Derivation)
}

func TestUpdateRemotePublicKeyRequiresRemoteLock(t *testing.T) {
	ctx := t.Context()
	r := source.NewResolver()

	err := r.UpdateRemotePublicKey(ctx, newRemoteKey(t))
	require.Error(t, err)
}
