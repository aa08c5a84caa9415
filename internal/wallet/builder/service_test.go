package builder_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/splitpot/go-relay/internal/config"
	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/wallet/builder"
)

type fakeLedger struct {
	accountCalls    int
	notFoundUntil   int
	accountErr      error
	sequenceNumber  uint64
	submitHash      string
	submitErr       error
	waitResult      *ledger.TransactionResult
	waitErr         error
	submitCalls     int
	lastSubmitted   *ledger.SignedEnvelope
}

func (f *fakeLedger) Account(_ context.Context, addr ledger.Address) (*ledger.AccountInfo, error) {
	f.accountCalls++
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	if f.accountCalls <= f.notFoundUntil {
		return nil, errors.Wrap(ledger.ErrAccountNotFound, addr.Hex())
	}
	return &ledger.AccountInfo{SequenceNumber: f.sequenceNumber}, nil
}

func (f *fakeLedger) ChainID(_ context.Context) (uint8, error) { return 2, nil }

func (f *fakeLedger) EstimateGasPrice(_ context.Context) (uint64, error) { return 100, nil }

func (f *fakeLedger) SubmitTransaction(_ context.Context, signed *ledger.SignedEnvelope) (string, error) {
	f.submitCalls++
	f.lastSubmitted = signed
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.submitHash, nil
}

func (f *fakeLedger) TransactionByHash(_ context.Context, hash string) (*ledger.TransactionResult, error) {
	return &ledger.TransactionResult{Hash: hash}, nil
}

func (f *fakeLedger) WaitForTransaction(_ context.Context, _ string) (*ledger.TransactionResult, error) {
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return f.waitResult, nil
}

func testConfig() config.WalletServer {
	return config.WalletServer{
		BuildMaxAttempts: 5,
		BuildRetryDelay:  time.Millisecond,
	}
}

var testPayload = ledger.EntryFunction{Function: "0xaa::group_ledger::record_expense"}

func TestBuildRetriesUntilAccountIndexed(t *testing.T) {
	client := &fakeLedger{notFoundUntil: 2, sequenceNumber: 41}

	svc, err := builder.NewService(client, testConfig())
	require.NoError(t, err)

	env, err := svc.Build(t.Context(), ledger.MustParseAddress("0xaa"), testPayload, true)
	require.NoError(t, err)

	assert.Equal(t, 3, client.accountCalls)
	assert.Equal(t, uint64(41), env.Raw.SequenceNumber)
	assert.True(t, env.FeePayerExpected)
}

func TestBuildGivesUpAfterBoundedAttempts(t *testing.T) {
	client := &fakeLedger{notFoundUntil: 100}

	svc, err := builder.NewService(client, testConfig())
	require.NoError(t, err)

	_, err = svc.Build(t.Context(), ledger.MustParseAddress("0xaa"), testPayload, false)
	require.Error(t, err)
	assert.True(t, ledger.IsAccountNotFound(err))
	assert.Equal(t, 5, client.accountCalls)
}

func TestBuildDoesNotRetryOtherFailures(t *testing.T) {
	client := &fakeLedger{accountErr: errors.New("ledger exploded")}

	svc, err := builder.NewService(client, testConfig())
	require.NoError(t, err)

	_, err = svc.Build(t.Context(), ledger.MustParseAddress("0xaa"), testPayload, false)
	require.Error(t, err)
	assert.Equal(t, 1, client.accountCalls)
}

func TestBuildThreadsFeePayerFlag(t *testing.T) {
	client := &fakeLedger{}

	svc, err := builder.NewService(client, testConfig())
	require.NoError(t, err)

	sponsored, err := svc.Build(t.Context(), ledger.MustParseAddress("0xaa"), testPayload, true)
	require.NoError(t, err)
	direct, err := svc.Build(t.Context(), ledger.MustParseAddress("0xaa"), testPayload, false)
	require.NoError(t, err)

	sponsoredMsg, err := sponsored.SigningMessage()
	require.NoError(t, err)
	directMsg, err := direct.SigningMessage()
	require.NoError(t, err)

	assert.True(t, sponsored.FeePayerExpected)
	assert.False(t, direct.FeePayerExpected)
	assert.NotEqual(t, sponsoredMsg, directMsg)
}
