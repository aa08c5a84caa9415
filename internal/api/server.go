package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github/splitpot/go-relay/internal/config"
	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/metrics"
	"github/splitpot/go-relay/internal/relay"
	"github/splitpot/go-relay/internal/remote"
	"github/splitpot/go-relay/internal/util"
	"github/splitpot/go-relay/internal/wallet"
	"github/splitpot/go-relay/internal/wallet/builder"
	"github/splitpot/go-relay/internal/wallet/localkey"
	"github/splitpot/go-relay/internal/wallet/signer"
	"github/splitpot/go-relay/internal/wallet/source"
)

// WalletService is the transaction pipeline consumed by the handlers.
type WalletService = wallet.Service

// RelayService is the gas sponsorship relay boundary.
type RelayService = relay.Service

// BuilderService assembles unsigned envelopes.
type BuilderService = builder.Service

// SignerService signs envelopes for the resolved backend.
type SignerService = signer.Service

type Router struct {
	Routes            []*echo.Route
	Root              *echo.Group
	Management        *echo.Group
	APIV1Transactions *echo.Group
	APIV1Wallet       *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config    config.Server
	Ledger    ledger.Client
	Remote    remote.Provider
	LocalKeys localkey.Manager
	Resolver  *source.Resolver
	Builder   BuilderService
	Signer    SignerService
	Relay     RelayService
	Wallet    WalletService
	Metrics   *metrics.Service
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	ledgerClient ledger.Client,
	provider remote.Provider,
	localKeys localkey.Manager,
	resolver *source.Resolver,
	builderService BuilderService,
	signerService SignerService,
	relayService RelayService,
	walletService WalletService,
	metrics *metrics.Service,
) *Server {
	return &Server{
		Config:    cfg,
		Ledger:    ledgerClient,
		Remote:    provider,
		LocalKeys: localKeys,
		Resolver:  resolver,
		Builder:   builderService,
		Signer:    signerService,
		Relay:     relayService,
		Wallet:    walletService,
		Metrics:   metrics,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	if s.LocalKeys != nil {
		log.Debug().Msg("Clearing local key material")
		s.LocalKeys.Clear()
	}

	return errs
}
