package ledger

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// Payload enum variants of the transaction payload.
const payloadVariantEntryFunction = 2

// Type tag enum variants.
const (
	typeTagBool    = 0
	typeTagU8      = 1
	typeTagU64     = 2
	typeTagU128    = 3
	typeTagAddress = 4
	typeTagVector  = 6
	typeTagStruct  = 7
)

// Account authenticator enum variants.
const authenticatorVariantEd25519 = 0

// EntryFunction is an on-chain function call payload. Function is the opaque
// `<moduleAddress>::<moduleName>::<entrypoint>` identifier; arguments are
// already BCS-encoded values.
type EntryFunction struct {
	Function      string
	TypeArguments []string
	Arguments     [][]byte
}

// Encode serializes the payload.
func (f EntryFunction) Encode(e *Encoder) error {
	addr, module, name, err := splitFunctionID(f.Function)
	if err != nil {
		return err
	}

	e.Uleb128(payloadVariantEntryFunction)
	e.FixedBytes(addr[:])
	e.String(module)
	e.String(name)

	e.Uleb128(uint32(len(f.TypeArguments)))
	for _, tag := range f.TypeArguments {
		if err := encodeTypeTag(e, tag); err != nil {
			return err
		}
	}

	e.Uleb128(uint32(len(f.Arguments)))
	for _, arg := range f.Arguments {
		e.Bytes(arg)
	}

	return nil
}

func splitFunctionID(id string) (Address, string, string, error) {
	parts := strings.Split(id, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return Address{}, "", "", errors.Errorf("invalid function id %q, want <address>::<module>::<function>", id)
	}

	addr, err := ParseAddress(parts[0])
	if err != nil {
		return Address{}, "", "", errors.Wrapf(err, "invalid module address in function id %q", id)
	}

	return addr, parts[1], parts[2], nil
}

func encodeTypeTag(e *Encoder, tag string) error {
	switch tag {
	case "bool":
		e.Uleb128(typeTagBool)
	case "u8":
		e.Uleb128(typeTagU8)
	case "u64":
		e.Uleb128(typeTagU64)
	case "u128":
		e.Uleb128(typeTagU128)
	case "address":
		e.Uleb128(typeTagAddress)
	default:
		if inner, ok := strings.CutPrefix(tag, "vector<"); ok && strings.HasSuffix(inner, ">") {
			e.Uleb128(typeTagVector)
			return encodeTypeTag(e, strings.TrimSuffix(inner, ">"))
		}

		addr, module, name, err := splitFunctionID(tag)
		if err != nil {
			return errors.Errorf("unsupported type argument %q", tag)
		}

		e.Uleb128(typeTagStruct)
		e.FixedBytes(addr[:])
		e.String(module)
		e.String(name)
		e.Uleb128(0) // no nested type arguments
	}

	return nil
}

// RawTransaction is the unsigned ledger transaction.
type RawTransaction struct {
	Sender                  Address
	SequenceNumber          uint64
	Payload                 EntryFunction
	MaxGasAmount            uint64
	GasUnitPrice            uint64
	ExpirationTimestampSecs uint64
	ChainID                 uint8
}

// Encode serializes the raw transaction.
func (t RawTransaction) Encode() ([]byte, error) {
	e := NewEncoder()
	e.FixedBytes(t.Sender[:])
	e.U64(t.SequenceNumber)

	if err := t.Payload.Encode(e); err != nil {
		return nil, err
	}

	e.U64(t.MaxGasAmount)
	e.U64(t.GasUnitPrice)
	e.U64(t.ExpirationTimestampSecs)
	e.U8(t.ChainID)

	return e.Encoded(), nil
}

// Domain-separation salts for signing messages.
var (
	saltRawTransaction         = sha3.Sum256([]byte("RawTransaction"))
	saltRawTransactionWithData = sha3.Sum256([]byte("RawTransactionWithData"))
)

// Multi-agent raw transaction enum variant carrying a fee payer slot.
const rawTransactionVariantFeePayer = 1

// UnsignedEnvelope is a serialized raw transaction plus the fee-payer
// expectation. It embeds a live sequence number and must never be cached
// across submission attempts.
type UnsignedEnvelope struct {
	Raw              RawTransaction
	FeePayerExpected bool
}

// SigningMessage computes the canonical bytes to be signed by the sender.
// A fee-payer envelope reserves the sponsor slot with the zero address so a
// relay service can append its own authenticator later.
func (u *UnsignedEnvelope) SigningMessage() ([]byte, error) {
	raw, err := u.Raw.Encode()
	if err != nil {
		return nil, err
	}

	e := NewEncoder()

	if u.FeePayerExpected {
		e.FixedBytes(saltRawTransactionWithData[:])
		e.Uleb128(rawTransactionVariantFeePayer)
		e.FixedBytes(raw)
		e.Uleb128(0) // no secondary signers
		var feePayer Address
		e.FixedBytes(feePayer[:])
	} else {
		e.FixedBytes(saltRawTransaction[:])
		e.FixedBytes(raw)
	}

	return e.Encoded(), nil
}

// SignedEnvelope is a raw transaction plus its sender authenticator, produced
// once per submission attempt.
type SignedEnvelope struct {
	RawTransactionBytes []byte
	AuthenticatorBytes  []byte
}

// MarshalBCS returns the submit-ready signed transaction bytes.
func (s *SignedEnvelope) MarshalBCS() []byte {
	e := NewEncoder()
	e.FixedBytes(s.RawTransactionBytes)
	e.FixedBytes(s.AuthenticatorBytes)

	return e.Encoded()
}

// NewEd25519Authenticator assembles the sender authenticator from a public
// key and a signature over the envelope's signing message.
func NewEd25519Authenticator(publicKey, signature []byte) []byte {
	e := NewEncoder()
	e.Uleb128(authenticatorVariantEd25519)
	e.Bytes(publicKey)
	e.Bytes(signature)

	return e.Encoded()
}
