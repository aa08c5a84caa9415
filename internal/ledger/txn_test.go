package ledger_test

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github/splitpot/go-relay/internal/ledger"
)

func testRawTransaction(t *testing.T) ledger.RawTransaction {
	t.Helper()

	sender, err := ledger.ParseAddress("0xcafe")
	require.NoError(t, err)

	return ledger.RawTransaction{
		Sender:         sender,
		SequenceNumber: 7,
		Payload: ledger.EntryFunction{
			Function:      "0x1::aptos_account::transfer",
			TypeArguments: nil,
			Arguments:     [][]byte{{0x01}},
		},
		MaxGasAmount:            200_000,
		GasUnitPrice:            100,
		ExpirationTimestampSecs: 1_700_000_000,
		ChainID:                 2,
	}
}

func TestRawTransactionEncodeDeterministic(t *testing.T) {
	txn := testRawTransaction(t)

	first, err := txn.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := txn.Encode()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRawTransactionEncodeRejectsBadFunction(t *testing.T) {
	txn := testRawTransaction(t)
	txn.Payload.Function = "not-a-function"

	_, err := txn.Encode()
	require.Error(t, err)

	txn.Payload.Function = "0x1::coin"
	_, err = txn.Encode()
	require.Error(t, err)
}

func TestSigningMessageSaltedWithDomain(t *testing.T) {
	env := &ledger.UnsignedEnvelope{Raw: testRawTransaction(t)}

	msg, err := env.SigningMessage()
	require.NoError(t, err)

	salt := sha3.Sum256([]byte("RawTransaction"))
	assert.Equal(t, salt[:], msg[:32])

	raw, err := env.Raw.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, msg[32:])
}

func TestSigningMessageFeePayerDiverges(t *testing.T) {
	raw := testRawTransaction(t)

	plain := &ledger.UnsignedEnvelope{Raw: raw}
	sponsored := &ledger.UnsignedEnvelope{Raw: raw, FeePayerExpected: true}

	plainMsg, err := plain.SigningMessage()
	require.NoError(t, err)

	sponsoredMsg, err := sponsored.SigningMessage()
	require.NoError(t, err)

	// the fee payer slot is part of the signed bytes, the two must never be
	// interchangeable
	assert.NotEqual(t, plainMsg, sponsoredMsg)

	salt := sha3.Sum256([]byte("RawTransactionWithData"))
	assert.Equal(t, salt[:], sponsoredMsg[:32])

	// variant tag, raw txn, empty secondary signers, zero-address fee payer
	rawBytes, err := raw.Encode()
	require.NoError(t, err)
	require.Len(t, sponsoredMsg, 32+1+len(rawBytes)+1+32)
	assert.Equal(t, byte(1), sponsoredMsg[32])
}

func TestEd25519AuthenticatorLayout(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	env := &ledger.UnsignedEnvelope{Raw: testRawTransaction(t)}
	msg, err := env.SigningMessage()
	require.NoError(t, err)

	sig := ed25519.Sign(priv, msg)
	auth := ledger.NewEd25519Authenticator(pub, sig)

	// variant 0, uleb len 32, 32 key bytes, uleb len 64, 64 signature bytes
	require.Len(t, auth, 1+1+32+1+64)
	assert.Equal(t, byte(0), auth[0])
	assert.Equal(t, byte(32), auth[1])
	assert.Equal(t, []byte(pub), auth[2:34])
	assert.Equal(t, byte(64), auth[34])
	assert.Equal(t, sig, auth[35:])
}

func TestSignedEnvelopeMarshalBCS(t *testing.T) {
	raw, err := testRawTransaction(t).Encode()
	require.NoError(t, err)

	signed := &ledger.SignedEnvelope{
		RawTransactionBytes: raw,
		AuthenticatorBytes:  []byte{0xab, 0xcd},
	}

	marshaled := signed.MarshalBCS()
	assert.Equal(t, append(append([]byte{}, raw...), 0xab, 0xcd), marshaled)
}

func TestEntryFunctionTypeArguments(t *testing.T) {
	e := ledger.NewEncoder()
	payload := ledger.EntryFunction{
		Function:      "0x1::coin::transfer",
		TypeArguments: []string{"0x1::aptos_coin::AptosCoin"},
	}
	require.NoError(t, payload.Encode(e))

	e = ledger.NewEncoder()
	payload.TypeArguments = []string{"vector<u8>"}
	require.NoError(t, payload.Encode(e))

	e = ledger.NewEncoder()
	payload.TypeArguments = []string{"not a type"}
	require.Error(t, payload.Encode(e))
}
