package api

import (
	"github/splitpot/go-relay/internal/config"
	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/metrics"
	"github/splitpot/go-relay/internal/relay"
	"github/splitpot/go-relay/internal/remote"
	"github/splitpot/go-relay/internal/wallet"
	"github/splitpot/go-relay/internal/wallet/builder"
	"github/splitpot/go-relay/internal/wallet/localkey"
	"github/splitpot/go-relay/internal/wallet/signer"
	"github/splitpot/go-relay/internal/wallet/source"
)

// PROVIDERS - the functions wire assembles the Server from, one per component.

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewLedgerClient(cfg config.Server) (ledger.Client, error) {
	return ledger.NewHTTPClient(cfg.Ledger)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewRemoteProvider(cfg config.Server) (remote.Provider, error) {
	if cfg.RemoteSigner.BaseURL == "" {
		return remote.Disabled(), nil
	}

	return remote.NewClient(cfg.RemoteSigner)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewLocalKeyManager(cfg config.Server) localkey.Manager {
	return localkey.NewManager(cfg.Wallet.DerivationPath)
}

func NewResolver() *source.Resolver {
	return source.NewResolver()
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewBuilderService(cfg config.Server, client ledger.Client) (BuilderService, error) {
	return builder.NewService(client, cfg.Wallet)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewSignerService(provider remote.Provider, resolver *source.Resolver) (SignerService, error) {
	return signer.NewService(provider, resolver)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewRelayService(cfg config.Server, metricsService *metrics.Service) (RelayService, error) {
	return relay.NewClient(cfg.Relay, metricsService)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewWalletService(
	cfg config.Server,
	resolver *source.Resolver,
	builderService BuilderService,
	signerService SignerService,
	relayService RelayService,
	ledgerClient ledger.Client,
	provider remote.Provider,
	localKeys localkey.Manager,
	metricsService *metrics.Service,
) (WalletService, error) {
	return wallet.NewService(
		resolver,
		builderService,
		signerService,
		relayService,
		ledgerClient,
		provider,
		localKeys,
		cfg.RemoteSigner.WalletID,
		metricsService,
	)
}
