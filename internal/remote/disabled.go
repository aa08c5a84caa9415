package remote

import (
	"context"

	"github.com/pkg/errors"
)

// ErrDisabled is returned by the disabled provider for every call.
var ErrDisabled = errors.New("remote signer is not configured")

type disabled struct{}

// Disabled returns a Provider for deployments without an embedded-wallet
// service. Every call reports the backend as unavailable.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func Disabled() Provider {
	return disabled{}
}

func (disabled) GetWallet(context.Context, string) (*Wallet, error) {
	return nil, ErrDisabled
}

func (disabled) RawSign(context.Context, string, []byte) (*RawSignature, error) {
	return nil, ErrDisabled
}
