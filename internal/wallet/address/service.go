package address

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github/splitpot/go-relay/internal/ledger"
)

// schemeEd25519 is the single-signature scheme discriminator appended to the
// public key before hashing.
const schemeEd25519 byte = 0x00

// FromPublicKey applies the canonical address-from-public-key transform:
// SHA3-256(publicKey || scheme byte). Deterministic; recomputing from the
// same key yields byte-identical output.
func FromPublicKey(pub ed25519.PublicKey) (Derived, error) {
	if len(pub) != ed25519.PublicKeySize {
		return Derived{}, errors.Errorf("invalid public key length %d, want %d", len(pub), ed25519.PublicKeySize)
	}

	h := sha3.New256()
	h.Write(pub)
	h.Write([]byte{schemeEd25519})

	var addr ledger.Address
	copy(addr[:], h.Sum(nil))

	return Derived{Address: addr, Derivation: DerivationFromPublicKey}, nil
}

// PadShortForm is the degraded fallback used when no public key is available:
// the short-form address is taken as the low-order bytes of a full-width
// address, left-padded with zero bytes. Best effort: the result may not
// match what on-chain signing will actually use, which is why the provenance
// is reported alongside.
func PadShortForm(short string) (Derived, error) {
	addr, err := ledger.ParseAddress(short)
	if err != nil {
		return Derived{}, errors.Wrap(err, "failed to pad short-form address")
	}

	return Derived{Address: addr, Derivation: DerivationPadded}, nil
}
