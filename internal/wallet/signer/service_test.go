package signer_test

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/remote"
	"github/splitpot/go-relay/internal/wallet/signer"
	"github/splitpot/go-relay/internal/wallet/source"
)

type fakeProvider struct {
	wallet       *remote.Wallet
	walletErr    error
	signature    []byte
	signPubKey   []byte
	signErr      error
	rawSignCalls int
	lastMessage  []byte
}

func (f *fakeProvider) GetWallet(_ context.Context, _ string) (*remote.Wallet, error) {
	if f.walletErr != nil {
		return nil, f.walletErr
	}
	if f.wallet == nil {
		return &remote.Wallet{}, nil
	}
	return f.wallet, nil
}

func (f *fakeProvider) RawSign(_ context.Context, _ string, message []byte) (*remote.RawSignature, error) {
	f.rawSignCalls++
	f.lastMessage = message
	if f.signErr != nil {
		return nil, f.signErr
	}
	return &remote.RawSignature{Signature: f.signature, PublicKey: f.signPubKey}, nil
}

type fakeKeyCache struct {
	updated ed25519.PublicKey
}

func (f *fakeKeyCache) UpdateRemotePublicKey(_ context.Context, pub ed25519.PublicKey) error {
	f.updated = pub
	return nil
}

func testEnvelope(t *testing.T, feePayer bool) *ledger.UnsignedEnvelope {
	t.Helper()

	return &ledger.UnsignedEnvelope{
		Raw: ledger.RawTransaction{
			Sender:                  ledger.MustParseAddress("0xaa"),
			SequenceNumber:          7,
			Payload:                 ledger.EntryFunction{Function: "0x1::group_ledger::settle"},
			MaxGasAmount:            ledger.MaxGasAmountDefault,
			GasUnitPrice:            100,
			ExpirationTimestampSecs: 1_900_000_000,
			ChainID:                 2,
		},
		FeePayerExpected: feePayer,
	}
}

// parseEd25519Authenticator splits variant || bytes(pub) || bytes(sig).
func parseEd25519Authenticator(t *testing.T, auth []byte) (pub, sig []byte) {
	t.Helper()

	require.Equal(t, byte(0), auth[0])
	require.Equal(t, byte(32), auth[1])
	pub = auth[2:34]
	require.Equal(t, byte(64), auth[34])
	sig = auth[35:99]
	require.Len(t, auth, 99)

	return pub, sig
}

func TestSignLocalProducesVerifiableSignature(t *testing.T) {
	ctx := t.Context()

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	svc, err := signer.NewService(&fakeProvider{}, nil)
	require.NoError(t, err)

	env := testEnvelope(t, false)
	signed, err := svc.Sign(ctx, &source.Identity{
		Source:          source.SourceLocal,
		LocalPrivateKey: priv,
	}, env)
	require.NoError(t, err)

	gotPub, gotSig := parseEd25519Authenticator(t, signed.AuthenticatorBytes)
	assert.Equal(t, []byte(pub), gotPub)

	message, err := env.SigningMessage()
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(pub, message, gotSig))

	raw, err := env.Raw.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, signed.RawTransactionBytes)
}

func TestSignLocalRejectsMalformedKey(t *testing.T) {
	svc, err := signer.NewService(&fakeProvider{}, nil)
	require.NoError(t, err)

	_, err = svc.Sign(t.Context(), &source.Identity{
		Source:          source.SourceLocal,
		LocalPrivateKey: []byte{0x01},
	}, testEnvelope(t, false))
	require.Error(t, err)
}

func TestSignRemoteUsesFreshPublicKeyOverCache(t *testing.T) {
	ctx := t.Context()

	freshPub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	stalePub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	provider := &fakeProvider{
		signature:  make([]byte, 64),
		signPubKey: freshPub,
	}
	cache := &fakeKeyCache{}

	svc, err := signer.NewService(provider, cache)
	require.NoError(t, err)

	signed, err := svc.Sign(ctx, &source.Identity{
		Source:          source.SourceRemote,
		RemoteWalletID:  "wallet-1",
		RemotePublicKey: stalePub,
	}, testEnvelope(t, true))
	require.NoError(t, err)

	gotPub, _ := parseEd25519Authenticator(t, signed.AuthenticatorBytes)
	assert.Equal(t, []byte(freshPub), gotPub)
	assert.Equal(t, []byte(freshPub), []byte(cache.updated))
}

func TestSignRemoteFetchesWalletWhenCacheEmpty(t *testing.T) {
	ctx := t.Context()

	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	provider := &fakeProvider{
		wallet:    &remote.Wallet{Address: "0xaa", PublicKey: pub},
		signature: make([]byte, 64),
	}

	svc, err := signer.NewService(provider, nil)
	require.NoError(t, err)

	signed, err := svc.Sign(ctx, &source.Identity{
		Source:         source.SourceRemote,
		RemoteWalletID: "wallet-1",
	}, testEnvelope(t, true))
	require.NoError(t, err)

	gotPub, _ := parseEd25519Authenticator(t, signed.AuthenticatorBytes)
	assert.Equal(t, []byte(pub), gotPub)
	assert.Equal(t, 1, provider.rawSignCalls)
}

func TestSignRemoteWithoutPublicKeyFailsHard(t *testing.T) {
	ctx := t.Context()

	_, localKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	provider := &fakeProvider{signature: make([]byte, 64)}

	svc, err := signer.NewService(provider, nil)
	require.NoError(t, err)

	// a local key sits on the identity, but the remote backend must never
	// silently sign with it
	_, err = svc.Sign(ctx, &source.Identity{
		Source:          source.SourceRemote,
		RemoteWalletID:  "wallet-1",
		LocalPrivateKey: localKey,
	}, testEnvelope(t, true))

	require.ErrorIs(t, err, signer.ErrNoRemotePublicKey)
}

func TestSignWithoutSourceIsFatal(t *testing.T) {
	svc, err := signer.NewService(&fakeProvider{}, nil)
	require.NoError(t, err)

	_, err = svc.Sign(t.Context(), &source.Identity{}, testEnvelope(t, false))
	require.ErrorIs(t, err, signer.ErrNoSource)

	_, err = svc.Sign(t.Context(), nil, testEnvelope(t, false))
	require.ErrorIs(t, err, signer.ErrNoSource)
}
