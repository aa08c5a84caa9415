package relay

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/config"
	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/metrics"
	"github/splitpot/go-relay/internal/util"
)

// Client talks to the gas sponsorship relay over its JSON-RPC protocol.
type Client struct {
	httpClient  *http.Client
	endpointURL string
	apiKey      string
	maxRetries  int
	backoffBase time.Duration
	metrics     *metrics.Service
}

// NewClient creates a relay client from config. A missing API key is a
// configuration error caught by config.Validate before this point; it is
// still rejected here so the client can never issue unauthenticated calls.
func NewClient(cfg config.RelayServer, m *metrics.Service) (*Client, error) {
	if cfg.EndpointURL == "" {
		return nil, errors.New("relay endpoint URL is required")
	}

	if cfg.APIKey == "" {
		return nil, errors.New("relay API key is required")
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		endpointURL: cfg.EndpointURL,
		apiKey:      cfg.APIKey,
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.RetryBackoffBase,
		metrics:     m,
	}, nil
}

// SubmitSponsored submits the signed envelope for fee sponsorship. Errors
// matching a network-transient signature are retried with exponential
// backoff up to the configured bound; everything else fails immediately.
func (c *Client) SubmitSponsored(ctx context.Context, signed *ledger.SignedEnvelope) (*PendingTransaction, error) {
	log := util.LogFromContext(ctx)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoffBase << (attempt - 1)
			log.Debug().
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying relay submission after transient error")

			select {
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), "relay submission cancelled")
			case <-time.After(backoff):
			}
		}

		pending, err := c.submitOnce(ctx, signed)
		if err == nil {
			c.countAttempt("success")
			return pending, nil
		}

		lastErr = err

		if !IsTransient(err) {
			c.countAttempt("rejected")
			return nil, err
		}

		c.countAttempt("transient_error")
	}

	return nil, errors.Wrapf(lastErr, "relay submission failed after %d attempts", c.maxRetries+1)
}

func (c *Client) submitOnce(ctx context.Context, signed *ledger.SignedEnvelope) (*PendingTransaction, error) {
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  rpcMethodSponsorAndSubmit,
		Params: []string{
			hex.EncodeToString(signed.RawTransactionBytes),
			hex.EncodeToString(signed.AuthenticatorBytes),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal relay request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create relay request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "relay request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read relay response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if len(body) == 0 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: "empty body"}
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return nil, errors.Wrapf(err, "failed to decode relay response: %s", string(body))
	}

	if rpcResp.Error != nil {
		return nil, &RejectionError{Code: rpcResp.Error.Code, Message: rpcResp.Error.Message}
	}

	if rpcResp.Result == nil || rpcResp.Result.PendingTransaction == nil || rpcResp.Result.PendingTransaction.Hash == "" {
		return nil, errors.Wrapf(ErrMissingPendingHash, "body: %s", string(body))
	}

	return &PendingTransaction{Hash: rpcResp.Result.PendingTransaction.Hash}, nil
}

func (c *Client) countAttempt(outcome string) {
	if c.metrics != nil {
		c.metrics.RelayAttempts.WithLabelValues(outcome).Inc()
	}
}

var _ Service = (*Client)(nil)
