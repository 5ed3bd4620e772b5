package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/events"
	"github.com/orbitpay/wallet-backend/internal/models"
)

// TransferService is the ledgerless sibling of the escrow engine: plain
// balance moves between local accounts, serialized by row locks in the
// store.
type TransferService struct {
	accounts  AccountStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewTransferService(accounts AccountStore, publisher events.Publisher, log *zap.Logger) *TransferService {
	return &TransferService{accounts: accounts, publisher: publisher, log: log}
}

func (s *TransferService) CreateAccount(ctx context.Context) (*models.Account, error) {
	return s.accounts.Create(ctx)
}

func (s *TransferService) GetBalance(ctx context.Context, id uuid.UUID) (float64, error) {
	return s.accounts.GetBalance(ctx, id)
}

// Deposit credits an account from outside the transfer graph (faucet
// style top-up). Returns the balance after the credit.
func (s *TransferService) Deposit(ctx context.Context, id uuid.UUID, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}
	if err := s.accounts.Deposit(ctx, id, amount); err != nil {
		return 0, err
	}
	return s.accounts.GetBalance(ctx, id)
}

func (s *TransferService) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	return s.accounts.ListTransactions(ctx, accountID)
}

// Transfer debits source and credits destination atomically. Either the
// whole move commits, including its audit row, or nothing is observable.
func (s *TransferService) Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount float64, memo *string) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if sourceID == destinationID {
		return nil, apperrors.ErrSameAccount
	}

	res, err := s.accounts.Transfer(ctx, sourceID, destinationID, amount, memo)
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, events.StreamWallet, events.Event{
		Type: events.EventTransferCompleted,
		Payload: map[string]any{
			"transaction_id": res.TransactionID.String(),
			"source_id":      sourceID.String(),
			"destination_id": destinationID.String(),
			"amount":         amount,
		},
	})

	s.log.Info("transfer completed",
		zap.String("transaction_id", res.TransactionID.String()),
		zap.Float64("amount", amount),
	)

	return res, nil
}
