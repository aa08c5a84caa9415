package wallet

import (
	"context"
	"crypto/ed25519"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github/splitpot/go-relay/internal/ledger"
	"github/splitpot/go-relay/internal/metrics"
	"github/splitpot/go-relay/internal/relay"
	"github/splitpot/go-relay/internal/remote"
	"github/splitpot/go-relay/internal/util"
	"github/splitpot/go-relay/internal/wallet/builder"
	"github/splitpot/go-relay/internal/wallet/localkey"
	"github/splitpot/go-relay/internal/wallet/signer"
	"github/splitpot/go-relay/internal/wallet/source"
)

type service struct {
	resolver       *source.Resolver
	builder        builder.Service
	signer         signer.Service
	relay          relay.Service
	ledger         ledger.Client
	provider       remote.Provider
	localKeys      localkey.Manager
	remoteWalletID string
	metrics        *metrics.Service
}

// NewService creates the transaction pipeline service. provider and localKeys
// may be nil when the corresponding backend is not configured.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(
	resolver *source.Resolver,
	builderService builder.Service,
	signerService signer.Service,
	relayService relay.Service,
	ledgerClient ledger.Client,
	provider remote.Provider,
	localKeys localkey.Manager,
	remoteWalletID string,
	metricsService *metrics.Service,
) (Service, error) {
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}

	return &service{
		resolver:       resolver,
		builder:        builderService,
		signer:         signerService,
		relay:          relayService,
		ledger:         ledgerClient,
		provider:       provider,
		localKeys:      localKeys,
		remoteWalletID: remoteWalletID,
		metrics:        metricsService,
	}, nil
}

// ResolveIdentity observes the current backend availability and resolves the
// session identity through the source resolver.
func (s *service) ResolveIdentity(ctx context.Context) (*source.Identity, error) {
	log := util.LogFromContext(ctx)

	snap := source.Snapshot{}

	if s.provider != nil && s.remoteWalletID != "" {
		wallet, err := s.provider.GetWallet(ctx, s.remoteWalletID)
		if err != nil {
			// remote outage must not block a locally held key
			log.Warn().Err(err).Msg("Remote wallet lookup failed, treating remote backend as unavailable")
		} else {
			snap.RemoteAvailable = true
			snap.RemoteAuthenticated = true
			snap.RemoteWalletID = s.remoteWalletID
			snap.RemotePublicKey = wallet.PublicKey
			snap.RemoteShortAddress = wallet.Address
		}
	}

	if s.localKeys != nil && s.localKeys.IsInitialized() {
		snap.LocalAvailable = true
		snap.LocalPrivateKey = ed25519.PrivateKey(s.localKeys.PrivateKey())
	}

	identity, err := s.resolver.Resolve(ctx, snap)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve wallet source")
	}

	if identity == nil {
		return nil, ErrNoWalletAvailable
	}

	return identity, nil
}

// Submit runs the sponsored pipeline and, when the relay fails, at most one
// direct sender-paid submission.
func (s *service) Submit(ctx context.Context, payload ledger.EntryFunction) (*Receipt, error) {
	log := util.LogFromContext(ctx).With().
		Str("submission_id", uuid.New().String()).
		Str("function", payload.Function).
		Logger()
	ctx = util.WithLogger(ctx, log)

	identity, err := s.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	signed, err := s.buildAndSign(ctx, identity, payload, true)
	if err != nil {
		s.countSubmission("error", true)
		return nil, err
	}

	pending, relayErr := s.relay.SubmitSponsored(ctx, signed)
	if relayErr == nil {
		s.countSubmission("ok", true)
		log.Info().Str("hash", pending.Hash).Msg("Transaction submitted through gas relay")

		return &Receipt{Hash: pending.Hash, Sponsored: true}, nil
	}

	if errors.Is(relayErr, context.Canceled) {
		s.countSubmission("error", true)
		return nil, relayErr
	}

	log.Warn().Err(relayErr).Msg("Gas relay submission failed, falling back to direct submission")

	if s.metrics != nil {
		s.metrics.RelayFallbacks.Inc()
	}

	// The fee payer slot is part of the signing message, so the direct path
	// needs a fresh envelope and a fresh signature.
	directSigned, err := s.buildAndSign(ctx, identity, payload, false)
	if err != nil {
		s.countSubmission("error", false)
		return nil, err
	}

	hash, err := s.ledger.SubmitTransaction(ctx, directSigned)
	if err != nil {
		s.countSubmission("error", false)
		return nil, errors.Wrap(err, "direct submission fallback failed")
	}

	s.countSubmission("ok", false)
	log.Info().Str("hash", hash).Msg("Transaction submitted directly, sender pays gas")

	return &Receipt{Hash: hash, Sponsored: false}, nil
}

// SubmitAndWait submits the payload and blocks until finality.
func (s *service) SubmitAndWait(ctx context.Context, payload ledger.EntryFunction) (*Receipt, error) {
	receipt, err := s.Submit(ctx, payload)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.Await(ctx, receipt.Hash)
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %s submitted but confirmation failed", receipt.Hash)
	}

	confirmed.Sponsored = receipt.Sponsored

	return confirmed, nil
}

func (s *service) buildAndSign(ctx context.Context, identity *source.Identity, payload ledger.EntryFunction, feePayer bool) (*ledger.SignedEnvelope, error) {
	env, err := s.builder.Build(ctx, identity.Address, payload, feePayer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transaction")
	}

	signed, err := s.signer.Sign(ctx, identity, env)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	if s.metrics != nil {
		s.metrics.SignOperations.WithLabelValues(identity.Source.String()).Inc()
	}

	return signed, nil
}

func (s *service) countSubmission(result string, sponsored bool) {
	if s.metrics == nil {
		return
	}

	s.metrics.Submissions.WithLabelValues(result, strconv.FormatBool(sponsored)).Inc()
}
