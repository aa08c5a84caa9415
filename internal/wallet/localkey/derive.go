package localkey

import (
	"crypto/ed25519"
	"crypto/sha512"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 2048
	pbkdf2KeyLength  = 64
	hardenedOffset   = 0x80000000
)

// DerivePrivateKey deterministically derives an ed25519 private key from the
// locally-authenticated secret: PBKDF2-SHA512 stretches the secret into a
// master seed, a hierarchical child key is derived along the given path, and
// its 32 key bytes seed the ed25519 key pair.
func DerivePrivateKey(secret, password, path string) (ed25519.PrivateKey, error) {
	if secret == "" {
		return nil, errors.New("secret must not be empty")
	}

	seed := pbkdf2.Key([]byte(secret), []byte("seed"+password), pbkdf2Iterations, pbkdf2KeyLength, sha512.New)

	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	indices, err := parseDerivationPath(path)
	if err != nil {
		return nil, err
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	if len(key.Key) != ed25519.SeedSize {
		return nil, errors.Errorf("derived key has length %d, want %d", len(key.Key), ed25519.SeedSize)
	}

	return ed25519.NewKeyFromSeed(key.Key), nil
}

// parseDerivationPath parses a path like "m/44'/637'/0'/0/0" into child key
// indices, with ' marking hardened derivation.
func parseDerivationPath(path string) ([]uint32, error) {
	if !strings.HasPrefix(path, "m/") {
		return nil, errors.Errorf("invalid derivation path %q", path)
	}

	parts := strings.Split(strings.TrimPrefix(path, "m/"), "/")
	indices := make([]uint32, 0, len(parts))

	for _, part := range parts {
		hardened := strings.HasSuffix(part, "'")
		part = strings.TrimSuffix(part, "'")

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, errors.Errorf("invalid path segment %q", part)
		}

		// segments carry at most 31 bits, the top bit marks hardening
		if index >= hardenedOffset {
			return nil, errors.Errorf("path segment %q out of range", part)
		}

		if hardened {
			index += hardenedOffset
		}

		indices = append(indices, uint32(index))
	}

	return indices, nil
}
