package test

import (
	"time"

	"testing"

	"github.com/stretchr/testify/require"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/api/router"
	"github/splitpot/go-relay/internal/config"
)

// TestSecret seeds the local key backend in test servers.
const TestSecret = "test secret phrase"

// DefaultTestConfig returns a config wired against the given upstreams, with
// all delays shrunk so retry paths stay fast.
func DefaultTestConfig(u *Upstreams) config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Relay.EndpointURL = u.RelayURL()
	cfg.Relay.APIKey = "test-api-key"
	cfg.Relay.MaxRetries = 2
	cfg.Relay.RetryBackoffBase = time.Millisecond

	cfg.Ledger.NodeURL = u.LedgerURL()
	cfg.Ledger.WaitTimeout = 2 * time.Second
	cfg.Ledger.WaitPollInterval = 10 * time.Millisecond

	cfg.RemoteSigner.BaseURL = ""
	cfg.RemoteSigner.WalletID = ""

	cfg.Wallet.BuildMaxAttempts = 5
	cfg.Wallet.BuildRetryDelay = time.Millisecond

	return cfg
}

// WithTestServer creates a fully wired server against in-process fake
// upstreams and a locally initialized key, then runs the closure against it.
func WithTestServer(t *testing.T, closure func(s *api.Server, u *Upstreams)) {
	t.Helper()

	u := StartUpstreams(t)
	WithTestServerConfigurable(t, DefaultTestConfig(u), u, closure)
}

// WithTestServerConfigurable is WithTestServer with a caller-supplied config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, u *Upstreams, closure func(s *api.Server, u *Upstreams)) {
	t.Helper()

	s, err := api.InitNewServer(cfg)
	require.NoError(t, err)

	require.NoError(t, s.LocalKeys.Initialize(TestSecret, ""))

	router.Init(s)

	closure(s, u)
}
