package ledger

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// AddressLength is the canonical on-chain account address width in bytes.
const AddressLength = 32

// Address is a fixed-width on-chain account address.
type Address [AddressLength]byte

// ParseAddress parses a hex address with or without 0x prefix. Short forms
// are interpreted as the low-order bytes of a full-width address and
// left-padded with zero bytes.
func ParseAddress(s string) (Address, error) {
	var a Address

	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	if s == "" {
		return a, errors.New("empty address")
	}

	if len(s)%2 != 0 {
		s = "0" + s
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return a, errors.Wrap(err, "invalid address hex")
	}

	if len(b) > AddressLength {
		return a, errors.Errorf("address too long: %d bytes", len(b))
	}

	copy(a[AddressLength-len(b):], b)

	return a, nil
}

// MustParseAddress parses a hex address and panics on malformed input.
// Reserved for package-level constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}

	return a
}

// Hex returns the full-width 0x-prefixed lowercase hex form.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether the address is all zero bytes.
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) String() string {
	return a.Hex()
}
