package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Upstreams are the in-process stand-ins for everything the server talks to:
// the ledger fullnode, the gas relay and the remote signer.
type Upstreams struct {
	Ledger *FakeLedgerNode
	Relay  *FakeRelay

	ledgerServer *httptest.Server
	relayServer  *httptest.Server
}

// FakeLedgerNode serves the minimal fullnode REST surface.
type FakeLedgerNode struct {
	mu sync.Mutex

	// SequenceNumber is returned for every account lookup.
	SequenceNumber string
	// AccountNotFoundCount makes the first N account lookups 404 with the
	// account_not_found error code.
	AccountNotFoundCount int
	// SubmittedHashes records direct submissions in order.
	SubmittedHashes []string
	// TransactionState is what by_hash lookups return; nil means 404.
	TransactionState map[string]any

	accountCalls int
}

func (f *FakeLedgerNode) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.URL.Path == "/v1":
			_ = json.NewEncoder(w).Encode(map[string]any{"chain_id": 2})
		case r.URL.Path == "/v1/estimate_gas_price":
			_ = json.NewEncoder(w).Encode(map[string]any{"gas_estimate": 100})
		case strings.HasPrefix(r.URL.Path, "/v1/accounts/"):
			f.accountCalls++
			if f.accountCalls <= f.AccountNotFoundCount {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]any{"message": "account not found", "error_code": "account_not_found"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"sequence_number": f.SequenceNumber, "authentication_key": "0x0"})
		case r.URL.Path == "/v1/transactions" && r.Method == http.MethodPost:
			hash := "0xdirect"
			f.SubmittedHashes = append(f.SubmittedHashes, hash)
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(map[string]any{"hash": hash})
		case strings.HasPrefix(r.URL.Path, "/v1/transactions/by_hash/"):
			hash := strings.TrimPrefix(r.URL.Path, "/v1/transactions/by_hash/")
			state, ok := f.TransactionState[hash]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(state)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

// FakeRelay serves the gas relay JSON-RPC endpoint.
type FakeRelay struct {
	mu sync.Mutex

	// FailWithStatus makes every call fail with this HTTP status when > 0.
	FailWithStatus int
	// RejectionMessage makes every call fail with a JSON-RPC error.
	RejectionMessage string
	// Calls counts relay submissions.
	Calls int
}

func (f *FakeRelay) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.Calls++

		if f.FailWithStatus > 0 {
			w.WriteHeader(f.FailWithStatus)
			return
		}

		if f.RejectionMessage != "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"id":      1,
				"error":   map[string]any{"code": -32000, "message": f.RejectionMessage},
			})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      1,
			"result": map[string]any{
				"pendingTransaction": map[string]any{"hash": "0xrelayed"},
			},
		})
	}
}

// StartUpstreams spins up the fake upstream servers and tears them down with
// the test.
func StartUpstreams(t *testing.T) *Upstreams {
	t.Helper()

	u := &Upstreams{
		Ledger: &FakeLedgerNode{SequenceNumber: "7"},
		Relay:  &FakeRelay{},
	}

	u.ledgerServer = httptest.NewServer(u.Ledger.handler())
	u.relayServer = httptest.NewServer(u.Relay.handler())

	t.Cleanup(func() {
		u.ledgerServer.Close()
		u.relayServer.Close()
	})

	return u
}

// LedgerURL is the fake fullnode base URL.
func (u *Upstreams) LedgerURL() string { return u.ledgerServer.URL }

// RelayURL is the fake relay endpoint URL.
func (u *Upstreams) RelayURL() string { return u.relayServer.URL }
