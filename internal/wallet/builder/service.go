package builder

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/config"
	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/util"
)

type service struct {
	client      ledger.Client
	maxAttempts int
	retryDelay  time.Duration
	now         func() time.Time
}

// NewService creates a new builder Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(client ledger.Client, cfg config.WalletServer) (Service, error) {
	if cfg.BuildMaxAttempts < 1 {
		return nil, errors.New("build max attempts must be at least 1")
	}

	return &service{
		client:      client,
		maxAttempts: cfg.BuildMaxAttempts,
		retryDelay:  cfg.BuildRetryDelay,
		now:         time.Now,
	}, nil
}

// Build fetches the sender's sequence number and current gas estimate, then
// assembles the envelope. Only a not-yet-indexed sender is retried, with a
// fixed inter-attempt delay up to the configured bound; every other failure
// propagates immediately.
func (s *service) Build(ctx context.Context, sender ledger.Address, payload ledger.EntryFunction, feePayer bool) (*ledger.UnsignedEnvelope, error) {
	log := util.LogFromContext(ctx)

	var account *ledger.AccountInfo

	for attempt := 1; ; attempt++ {
		var err error
		account, err = s.client.Account(ctx, sender)
		if err == nil {
			break
		}

		if !ledger.IsAccountNotFound(err) {
			return nil, errors.Wrap(err, "failed to fetch sender account")
		}

		if attempt >= s.maxAttempts {
			return nil, errors.Wrapf(err, "sender not indexed after %d attempts", attempt)
		}

		log.Debug().
			Int("attempt", attempt).
			Str("sender", sender.Hex()).
			Msg("Sender not indexed yet, retrying build")

		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "build cancelled")
		case <-time.After(s.retryDelay):
		}
	}

	chainID, err := s.client.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch chain id")
	}

	gasUnitPrice, err := s.client.EstimateGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to estimate gas price")
	}

	return &ledger.UnsignedEnvelope{
		Raw: ledger.RawTransaction{
			Sender:                  sender,
			SequenceNumber:          account.SequenceNumber,
			Payload:                 payload,
			MaxGasAmount:            ledger.MaxGasAmountDefault,
			GasUnitPrice:            gasUnitPrice,
			ExpirationTimestampSecs: uint64(s.now().Add(ledger.ExpirationWindow).Unix()),
			ChainID:                 chainID,
		},
		FeePayerExpected: feePayer,
	}, nil
}
