package ledger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/splitpot/go-relay/internal/config"
	"github/splitpot/go-relay/internal/ledger"
)

type fakeNode struct {
	mu sync.Mutex

	infoCalls     int
	accountStatus int
	accountBody   map[string]any
	pendingPolls  int
	byHashCalls   int

	lastSubmitContentType string
}

func (f *fakeNode) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch r.URL.Path {
		case "/v1":
			f.infoCalls++
			_ = json.NewEncoder(w).Encode(map[string]any{"chain_id": 2})
		case "/v1/estimate_gas_price":
			_ = json.NewEncoder(w).Encode(map[string]any{"gas_estimate": 150})
		case "/v1/accounts/0x" + addressSuffix:
			if f.accountStatus != 0 {
				w.WriteHeader(f.accountStatus)
			}
			_ = json.NewEncoder(w).Encode(f.accountBody)
		case "/v1/transactions":
			f.lastSubmitContentType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(map[string]any{"hash": "0xsubmitted"})
		case "/v1/transactions/by_hash/0xabc":
			f.byHashCalls++
			if f.byHashCalls <= f.pendingPolls {
				_ = json.NewEncoder(w).Encode(map[string]any{"type": "pending_transaction", "hash": "0xabc"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"type":      "user_transaction",
				"hash":      "0xabc",
				"success":   true,
				"vm_status": "Executed successfully",
			})
		case "/v1/transactions/by_hash/0xunknown":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

// addressSuffix is the canonical full-width form of 0xcafe without the 0x prefix.
const addressSuffix = "000000000000000000000000000000000000000000000000000000000000cafe"

func newTestClient(t *testing.T, node *fakeNode) *ledger.HTTPClient {
	t.Helper()

	server := httptest.NewServer(node.handler())
	t.Cleanup(server.Close)

	client, err := ledger.NewHTTPClient(config.LedgerServer{
		NodeURL:          server.URL,
		RequestTimeout:   5 * time.Second,
		WaitTimeout:      2 * time.Second,
		WaitPollInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	return client
}

func TestClientAccount(t *testing.T) {
	node := &fakeNode{accountBody: map[string]any{"sequence_number": "42", "authentication_key": "0xcafe"}}
	client := newTestClient(t, node)

	info, err := client.Account(context.Background(), ledger.MustParseAddress("0xcafe"))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), info.SequenceNumber)
}

func TestClientAccountNotFoundMapped(t *testing.T) {
	node := &fakeNode{
		accountStatus: http.StatusNotFound,
		accountBody:   map[string]any{"message": "not found", "error_code": "account_not_found"},
	}
	client := newTestClient(t, node)

	_, err := client.Account(context.Background(), ledger.MustParseAddress("0xcafe"))
	require.Error(t, err)
	assert.True(t, ledger.IsAccountNotFound(err))
}

func TestClientAccountOther404NotMapped(t *testing.T) {
	node := &fakeNode{
		accountStatus: http.StatusNotFound,
		accountBody:   map[string]any{"message": "bad route", "error_code": "web_framework_error"},
	}
	client := newTestClient(t, node)

	_, err := client.Account(context.Background(), ledger.MustParseAddress("0xcafe"))
	require.Error(t, err)
	assert.False(t, ledger.IsAccountNotFound(err))
}

func TestClientChainIDCached(t *testing.T) {
	node := &fakeNode{}
	client := newTestClient(t, node)

	for range 3 {
		chainID, err := client.ChainID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint8(2), chainID)
	}

	assert.Equal(t, 1, node.infoCalls)
}

func TestClientSubmitTransaction(t *testing.T) {
	node := &fakeNode{}
	client := newTestClient(t, node)

	hash, err := client.SubmitTransaction(context.Background(), &ledger.SignedEnvelope{
		RawTransactionBytes: []byte{0x01},
		AuthenticatorBytes:  []byte{0x02},
	})
	require.NoError(t, err)

	assert.Equal(t, "0xsubmitted", hash)
	assert.Equal(t, "application/x.signed-transaction+bcs", node.lastSubmitContentType)
}

func TestClientTransactionByHashUnknownIsPending(t *testing.T) {
	node := &fakeNode{}
	client := newTestClient(t, node)

	result, err := client.TransactionByHash(context.Background(), "0xunknown")
	require.NoError(t, err)
	assert.True(t, result.Pending)
}

func TestClientWaitForTransactionPolls(t *testing.T) {
	node := &fakeNode{pendingPolls: 2}
	client := newTestClient(t, node)

	result, err := client.WaitForTransaction(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.False(t, result.Pending)
	assert.True(t, result.Success)
	assert.Equal(t, 3, node.byHashCalls)
}
