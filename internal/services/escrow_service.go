package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/config"
	"github.com/orbitpay/wallet-backend/internal/events"
	"github.com/orbitpay/wallet-backend/internal/keywords"
	"github.com/orbitpay/wallet-backend/internal/ledger"
	"github.com/orbitpay/wallet-backend/internal/models"
	"github.com/orbitpay/wallet-backend/internal/secrets"
)

// EscrowService runs the keyword hand-off: Initiate moves a sender's
// funds into a one-time escrow account keyed by a two-word token, Claim
// releases them to whoever presents the token first.
type EscrowService struct {
	users     UserStore
	escrows   EscrowStore
	ledger    ledger.Client
	generator *keywords.Generator
	cipher    secrets.Cipher
	publisher events.Publisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewEscrowService(
	users UserStore,
	escrows EscrowStore,
	ledgerClient ledger.Client,
	generator *keywords.Generator,
	cipher secrets.Cipher,
	publisher events.Publisher,
	cfg *config.Config,
	log *zap.Logger,
) *EscrowService {
	return &EscrowService{
		users:     users,
		escrows:   escrows,
		ledger:    ledgerClient,
		generator: generator,
		cipher:    cipher,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// Initiate funds a fresh escrow account and records the claim token.
// Nothing is persisted until the funding transfer has succeeded on the
// ledger, so a failed initiation never leaves a token pointing at money
// that did not move. The inverse gap remains: if the insert fails after
// the transfer landed, the funds sit in the escrow account with no claim
// path and need operator reconciliation.
func (s *EscrowService) Initiate(ctx context.Context, senderUserID uuid.UUID, amount float64) (*models.EscrowTransaction, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	sender, err := s.users.GetByID(ctx, senderUserID)
	if err != nil {
		return nil, err
	}

	// One-time escrow keypair; the gateway activates the account so it
	// can receive value. Activation failure aborts the whole initiation.
	acct, err := s.ledger.CreateAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create escrow account: %w", err)
	}

	keyword, err := s.pickKeyword(ctx)
	if err != nil {
		return nil, err
	}

	senderSecret, err := s.cipher.Open(sender.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open sender secret: %w", err)
	}

	memo := "escrow:" + keyword
	funding, err := s.ledger.Transfer(ctx, senderSecret, acct.Address, amount, memo)
	if err != nil {
		if ledger.IsUnknownOutcome(err) {
			// The funding transfer may have landed without a record to
			// claim against. Keyword is deliberately not persisted;
			// surface what reconciliation needs.
			s.log.Error("escrow funding outcome unknown, funds may be stranded",
				zap.String("sender_user_id", senderUserID.String()),
				zap.String("escrow_address", acct.Address),
				zap.Float64("amount", amount),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("escrow funding failed: %w", err)
	}

	escrowSecret, err := s.cipher.Seal(acct.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to seal escrow secret: %w", err)
	}

	e := &models.EscrowTransaction{
		KeywordPair:   keyword,
		SenderUserID:  senderUserID,
		EscrowAddress: acct.Address,
		EscrowSecret:  escrowSecret,
		Amount:        amount,
		Memo:          memo,
		Status:        models.EscrowStatusOpen,
		FundingTxHash: funding.Hash,
		ExpiresAt:     time.Now().Add(s.cfg.EscrowTTL),
	}
	if err := s.escrows.Create(ctx, e); err != nil {
		s.log.Error("escrow funded on ledger but record not persisted, funds stranded",
			zap.String("escrow_address", acct.Address),
			zap.String("funding_tx_hash", funding.Hash),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to persist escrow record: %w", err)
	}

	_ = s.publisher.Publish(ctx, events.StreamWallet, events.Event{
		Type: events.EventEscrowInitiated,
		Payload: map[string]any{
			"escrow_id":      e.ID.String(),
			"sender_user_id": senderUserID.String(),
			"amount":         amount,
		},
	})

	s.log.Info("escrow initiated",
		zap.String("escrow_id", e.ID.String()),
		zap.String("escrow_address", acct.Address),
		zap.Float64("amount", amount),
	)

	return e, nil
}

// Claim redeems an open escrow. The store's conditional update settles
// who wins before the ledger is touched, so the release transfer runs
// at most once per escrow no matter how many claims race.
func (s *EscrowService) Claim(ctx context.Context, claimantUserID uuid.UUID, keywordPair string) (string, error) {
	if !keywords.IsWellFormed(keywordPair) {
		return "", apperrors.ErrEscrowNotFound
	}

	claimant, err := s.users.GetByID(ctx, claimantUserID)
	if err != nil {
		return "", err
	}

	e, err := s.escrows.Claim(ctx, keywordPair)
	if err != nil {
		return "", err
	}

	escrowSecret, err := s.cipher.Open(e.EscrowSecret)
	if err != nil {
		return "", fmt.Errorf("failed to open escrow secret: %w", err)
	}

	release, err := s.ledger.Transfer(ctx, escrowSecret, claimant.PublicKey, e.Amount, "release:"+keywordPair)
	if err != nil {
		// The row is already claimed; unwinding it would reopen the
		// double-spend window. Claimed-but-unpaid rows are the
		// reconciliation queue.
		s.log.Error("escrow claimed but release transfer failed",
			zap.String("escrow_id", e.ID.String()),
			zap.String("claimant_user_id", claimantUserID.String()),
			zap.Bool("outcome_unknown", ledger.IsUnknownOutcome(err)),
			zap.Error(err),
		)
		return "", fmt.Errorf("escrow release failed: %w", err)
	}

	if err := s.escrows.SetReleaseTxHash(ctx, e.ID, release.Hash); err != nil {
		s.log.Warn("failed to record release tx hash", zap.String("escrow_id", e.ID.String()), zap.Error(err))
	}

	_ = s.publisher.Publish(ctx, events.StreamWallet, events.Event{
		Type: events.EventEscrowClaimed,
		Payload: map[string]any{
			"escrow_id":        e.ID.String(),
			"claimant_user_id": claimantUserID.String(),
			"hash":             release.Hash,
		},
	})

	s.log.Info("escrow claimed",
		zap.String("escrow_id", e.ID.String()),
		zap.String("hash", release.Hash),
	)

	return release.Hash, nil
}

// ExpireDue settles every overdue open escrow and refunds the sender.
// Safe to run from any number of reaper instances: the store hands each
// row to exactly one caller.
func (s *EscrowService) ExpireDue(ctx context.Context) (int, error) {
	expired, err := s.escrows.ExpireDue(ctx)
	if err != nil {
		return 0, err
	}

	for _, e := range expired {
		sender, err := s.users.GetByID(ctx, e.SenderUserID)
		if err != nil {
			s.log.Error("expired escrow has no resolvable sender", zap.String("escrow_id", e.ID.String()), zap.Error(err))
			continue
		}

		escrowSecret, err := s.cipher.Open(e.EscrowSecret)
		if err != nil {
			s.log.Error("failed to open escrow secret for refund", zap.String("escrow_id", e.ID.String()), zap.Error(err))
			continue
		}

		refund, err := s.ledger.Transfer(ctx, escrowSecret, sender.PublicKey, e.Amount, "refund:"+e.KeywordPair)
		if err != nil {
			s.log.Error("refund transfer failed, escrow needs reconciliation",
				zap.String("escrow_id", e.ID.String()),
				zap.Bool("outcome_unknown", ledger.IsUnknownOutcome(err)),
				zap.Error(err),
			)
			continue
		}

		if err := s.escrows.SetRefundTxHash(ctx, e.ID, refund.Hash); err != nil {
			s.log.Warn("failed to record refund tx hash", zap.String("escrow_id", e.ID.String()), zap.Error(err))
		}

		_ = s.publisher.Publish(ctx, events.StreamWallet, events.Event{
			Type: events.EventEscrowExpired,
			Payload: map[string]any{
				"escrow_id":      e.ID.String(),
				"sender_user_id": e.SenderUserID.String(),
				"refund_hash":    refund.Hash,
			},
		})
	}

	return len(expired), nil
}

func (s *EscrowService) ListBySender(ctx context.Context, senderUserID uuid.UUID) ([]models.EscrowTransaction, error) {
	return s.escrows.ListBySender(ctx, senderUserID)
}

func (s *EscrowService) pickKeyword(ctx context.Context) (string, error) {
	attempts := s.cfg.KeywordMaxAttempts
	if attempts <= 0 {
		attempts = 5
	}
	for i := 0; i < attempts; i++ {
		keyword := s.generator.Pair()
		open, err := s.escrows.KeywordOpen(ctx, keyword)
		if err != nil {
			return "", err
		}
		if !open {
			return keyword, nil
		}
		s.log.Debug("keyword collision, retrying", zap.String("keyword", keyword))
	}
	return "", apperrors.ErrKeywordSpaceExhausted
}
