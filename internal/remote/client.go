package remote

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/config"
)

// Client is the HTTP implementation of Provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewClient creates a remote signer client from config.
func NewClient(cfg config.RemoteSignerServer) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("remote signer base URL is required")
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		authToken:  cfg.AuthToken,
	}, nil
}

type walletResponse struct {
	Address   string `json:"address"`
	PublicKey string `json:"publicKey,omitempty"`
}

// GetWallet fetches the normalized wallet shape by wallet id.
func (c *Client) GetWallet(ctx context.Context, walletID string) (*Wallet, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/wallets/"+walletID, nil)
	if err != nil {
		return nil, err
	}

	var resp walletResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode wallet response")
	}

	wallet := &Wallet{Address: resp.Address}
	if resp.PublicKey != "" {
		pub, err := decodeHex(resp.PublicKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid public key in wallet response")
		}
		wallet.PublicKey = pub
	}

	return wallet, nil
}

type rawSignRequest struct {
	WalletID string `json:"walletId"`
	Message  string `json:"message"`
}

type rawSignResponse struct {
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey,omitempty"`
}

// RawSign signs the given message with the provider-held key.
func (c *Client) RawSign(ctx context.Context, walletID string, message []byte) (*RawSignature, error) {
	reqBody, err := json.Marshal(rawSignRequest{
		WalletID: walletID,
		Message:  "0x" + hex.EncodeToString(message),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal raw-sign request")
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/wallets/"+walletID+"/raw-sign", reqBody)
	if err != nil {
		return nil, err
	}

	var resp rawSignResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode raw-sign response")
	}

	if resp.Signature == "" {
		return nil, errors.New("raw-sign response is missing the signature")
	}

	sig, err := decodeHex(resp.Signature)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signature in raw-sign response")
	}

	result := &RawSignature{Signature: sig}
	if resp.PublicKey != "" {
		pub, err := decodeHex(resp.PublicKey)
		if err != nil {
			return nil, errors.Wrap(err, "invalid public key in raw-sign response")
		}
		result.PublicKey = pub
	}

	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "remote signer request to %s failed", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read remote signer response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("remote signer returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

var _ Provider = (*Client)(nil)
