package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github/splitpot/go-relay/internal/util"
)

// EchoServer configures the HTTP listener.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
}

// LoggerServer configures zerolog.
type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

// RelayServer configures the gas sponsorship relay client.
type RelayServer struct {
	EndpointURL      string
	APIKey           string
	RequestTimeout   time.Duration
	MaxRetries       int
	RetryBackoffBase time.Duration
}

// LedgerServer configures the target-ledger fullnode client.
type LedgerServer struct {
	NodeURL        string
	IndexerURL     string
	Network        string
	RequestTimeout time.Duration
	WaitTimeout    time.Duration
	WaitPollInterval time.Duration
}

// RemoteSignerServer configures the embedded-wallet raw-sign provider.
type RemoteSignerServer struct {
	BaseURL        string
	AuthToken      string
	WalletID       string
	RequestTimeout time.Duration
}

// WalletServer configures local key handling and transaction building.
type WalletServer struct {
	KeystorePath     string
	KeystorePassword string
	DerivationPath   string
	BuildMaxAttempts int
	BuildRetryDelay  time.Duration
}

// Server is the aggregated service configuration, fully resolved from ENV.
type Server struct {
	Echo         EchoServer
	Logger       LoggerServer
	Relay        RelayServer
	Ledger       LedgerServer
	RemoteSigner RemoteSignerServer
	Wallet       WalletServer
}

// DefaultServiceConfigFromEnv returns the server config as defined by ENV,
// falling back to sensible defaults for everything that is not security or
// endpoint relevant.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              parseLogLevel(util.GetEnv("SERVER_LOGGER_LEVEL", "info")),
			RequestLevel:       parseLogLevel(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", "debug")),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Relay: RelayServer{
			EndpointURL:      util.GetEnv("SERVER_RELAY_ENDPOINT_URL", ""),
			APIKey:           util.GetEnv("SERVER_RELAY_API_KEY", ""),
			RequestTimeout:   util.GetEnvAsDuration("SERVER_RELAY_REQUEST_TIMEOUT", 10*time.Second),
			MaxRetries:       util.GetEnvAsInt("SERVER_RELAY_MAX_RETRIES", 2),
			RetryBackoffBase: util.GetEnvAsDuration("SERVER_RELAY_RETRY_BACKOFF_BASE", 500*time.Millisecond),
		},
		Ledger: LedgerServer{
			NodeURL:          util.GetEnv("SERVER_LEDGER_NODE_URL", ""),
			IndexerURL:       util.GetEnv("SERVER_LEDGER_INDEXER_URL", ""),
			Network:          util.GetEnv("SERVER_LEDGER_NETWORK", "testnet"),
			RequestTimeout:   util.GetEnvAsDuration("SERVER_LEDGER_REQUEST_TIMEOUT", 10*time.Second),
			WaitTimeout:      util.GetEnvAsDuration("SERVER_LEDGER_WAIT_TIMEOUT", 30*time.Second),
			WaitPollInterval: util.GetEnvAsDuration("SERVER_LEDGER_WAIT_POLL_INTERVAL", 500*time.Millisecond),
		},
		RemoteSigner: RemoteSignerServer{
			BaseURL:        util.GetEnv("SERVER_REMOTE_SIGNER_BASE_URL", ""),
			AuthToken:      util.GetEnv("SERVER_REMOTE_SIGNER_AUTH_TOKEN", ""),
			WalletID:       util.GetEnv("SERVER_REMOTE_SIGNER_WALLET_ID", ""),
			RequestTimeout: util.GetEnvAsDuration("SERVER_REMOTE_SIGNER_REQUEST_TIMEOUT", 10*time.Second),
		},
		Wallet: WalletServer{
			KeystorePath:     util.GetEnv("SERVER_WALLET_KEYSTORE_PATH", "keystore.json"),
			KeystorePassword: util.GetEnv("SERVER_WALLET_KEYSTORE_PASSWORD", ""),
			DerivationPath:   util.GetEnv("SERVER_WALLET_DERIVATION_PATH", "m/44'/637'/0'/0/0"),
			BuildMaxAttempts: util.GetEnvAsInt("SERVER_WALLET_BUILD_MAX_ATTEMPTS", 5),
			BuildRetryDelay:  util.GetEnvAsDuration("SERVER_WALLET_BUILD_RETRY_DELAY", 2*time.Second),
		},
	}
}

// Validate checks the parts of the config that must be present before any
// transaction attempt. A missing relay API key is a hard configuration error
// surfaced at startup, never per call.
func (s Server) Validate() error {
	if s.Relay.EndpointURL == "" {
		return errors.New("config: SERVER_RELAY_ENDPOINT_URL is required")
	}

	if s.Relay.APIKey == "" {
		return errors.New("config: SERVER_RELAY_API_KEY is required")
	}

	if s.Ledger.NodeURL == "" {
		return errors.New("config: SERVER_LEDGER_NODE_URL is required")
	}

	return nil
}

func parseLogLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}

	return level
}
