package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/config"
	"github/splitpot/go-relay/internal/util"
)

const signedTransactionContentType = "application/x.signed-transaction+bcs"

// HTTPClient is the REST fullnode implementation of Client.
type HTTPClient struct {
	httpClient       *http.Client
	nodeURL          string
	waitTimeout      time.Duration
	waitPollInterval time.Duration

	mu           sync.Mutex
	chainID      uint8
	chainIDKnown bool
}

// NewHTTPClient creates a fullnode client from the ledger config.
func NewHTTPClient(cfg config.LedgerServer) (*HTTPClient, error) {
	if cfg.NodeURL == "" {
		return nil, errors.New("ledger node URL is required")
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		nodeURL:          strings.TrimSuffix(cfg.NodeURL, "/"),
		waitTimeout:      cfg.WaitTimeout,
		waitPollInterval: cfg.WaitPollInterval,
	}, nil
}

type accountResponse struct {
	SequenceNumber    string `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

type errorResponse struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// Account fetches the live account state of the given address.
func (c *HTTPClient) Account(ctx context.Context, addr Address) (*AccountInfo, error) {
	body, status, err := c.get(ctx, "/v1/accounts/"+addr.Hex())
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		var errResp errorResponse
		// a 404 may also mean a bad route; only map account_not_found
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.ErrorCode == "account_not_found" {
			return nil, errors.Wrap(ErrAccountNotFound, addr.Hex())
		}

		return nil, errors.Errorf("account lookup failed with status %d: %s", status, string(body))
	}

	if status != http.StatusOK {
		return nil, errors.Errorf("account lookup failed with status %d: %s", status, string(body))
	}

	var resp accountResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode account response")
	}

	seq, err := strconv.ParseUint(resp.SequenceNumber, 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "invalid sequence number in account response")
	}

	return &AccountInfo{
		SequenceNumber:    seq,
		AuthenticationKey: resp.AuthenticationKey,
	}, nil
}

// ChainID returns the network's chain id, fetched once and cached.
func (c *HTTPClient) ChainID(ctx context.Context) (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainIDKnown {
		return c.chainID, nil
	}

	body, status, err := c.get(ctx, "/v1")
	if err != nil {
		return 0, err
	}

	if status != http.StatusOK {
		return 0, errors.Errorf("ledger info failed with status %d: %s", status, string(body))
	}

	var resp struct {
		ChainID uint8 `json:"chain_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, errors.Wrap(err, "failed to decode ledger info")
	}

	c.chainID = resp.ChainID
	c.chainIDKnown = true

	return c.chainID, nil
}

// EstimateGasPrice returns the current gas unit price estimate.
func (c *HTTPClient) EstimateGasPrice(ctx context.Context) (uint64, error) {
	body, status, err := c.get(ctx, "/v1/estimate_gas_price")
	if err != nil {
		return 0, err
	}

	if status != http.StatusOK {
		return 0, errors.Errorf("gas estimate failed with status %d: %s", status, string(body))
	}

	var resp struct {
		GasEstimate uint64 `json:"gas_estimate"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, errors.Wrap(err, "failed to decode gas estimate")
	}

	return resp.GasEstimate, nil
}

// SubmitTransaction submits a signed transaction, sender-paid.
func (c *HTTPClient) SubmitTransaction(ctx context.Context, signed *SignedEnvelope) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nodeURL+"/v1/transactions", bytes.NewReader(signed.MarshalBCS()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create submit request")
	}
	req.Header.Set("Content-Type", signedTransactionContentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to submit transaction")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read submit response")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", errors.Errorf("transaction submission failed with status %d: %s", resp.StatusCode, string(body))
	}

	var submitResp struct {
		Hash string `json:"hash"`
	}
	if err := json.Unmarshal(body, &submitResp); err != nil {
		return "", errors.Wrap(err, "failed to decode submit response")
	}

	if submitResp.Hash == "" {
		return "", errors.New("submit response is missing the transaction hash")
	}

	return submitResp.Hash, nil
}

type transactionResponse struct {
	Type     string `json:"type"`
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
}

// TransactionByHash fetches the current state of a transaction.
func (c *HTTPClient) TransactionByHash(ctx context.Context, hash string) (*TransactionResult, error) {
	body, status, err := c.get(ctx, "/v1/transactions/by_hash/"+hash)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		// not yet known to this node, treat as pending
		return &TransactionResult{Hash: hash, Pending: true}, nil
	}

	if status != http.StatusOK {
		return nil, errors.Errorf("transaction lookup failed with status %d: %s", status, string(body))
	}

	var resp transactionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode transaction response")
	}

	return &TransactionResult{
		Hash:     hash,
		Pending:  resp.Type == "pending_transaction",
		Success:  resp.Success,
		VMStatus: resp.VMStatus,
	}, nil
}

// WaitForTransaction polls the transaction by hash until it leaves the
// pending state or the wait timeout elapses.
func (c *HTTPClient) WaitForTransaction(ctx context.Context, hash string) (*TransactionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.waitTimeout)
	defer cancel()

	ticker := time.NewTicker(c.waitPollInterval)
	defer ticker.Stop()

	for {
		result, err := c.TransactionByHash(ctx, hash)
		if err != nil {
			return nil, err
		}

		if !result.Pending {
			return result, nil
		}

		util.LogFromContext(ctx).Trace().Str("hash", hash).Msg("Transaction still pending")

		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "timed out waiting for transaction %s", hash)
		case <-ticker.C:
		}
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nodeURL+path, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read response body")
	}

	return body, resp.StatusCode, nil
}

var _ Client = (*HTTPClient)(nil)

// MaxGasAmountDefault bounds the gas a built transaction may consume.
const MaxGasAmountDefault = 200_000

// ExpirationWindow is how far in the future built transactions expire.
const ExpirationWindow = 2 * time.Minute

// String implements fmt.Stringer for diagnostics.
func (c *HTTPClient) String() string {
	return fmt.Sprintf("ledger.HTTPClient(%s)", c.nodeURL)
}
