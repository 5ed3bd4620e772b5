package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/orbitpay/wallet-backend/internal/models"
)

// The services program against these store interfaces; the concrete
// implementations live in internal/repositories.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type EscrowStore interface {
	Create(ctx context.Context, e *models.EscrowTransaction) error
	KeywordOpen(ctx context.Context, keyword string) (bool, error)
	Claim(ctx context.Context, keyword string) (*models.EscrowTransaction, error)
	SetReleaseTxHash(ctx context.Context, id uuid.UUID, hash string) error
	ExpireDue(ctx context.Context) ([]models.EscrowTransaction, error)
	SetRefundTxHash(ctx context.Context, id uuid.UUID, hash string) error
	ListBySender(ctx context.Context, senderUserID uuid.UUID) ([]models.EscrowTransaction, error)
}

type AccountStore interface {
	Create(ctx context.Context) (*models.Account, error)
	GetBalance(ctx context.Context, id uuid.UUID) (float64, error)
	Deposit(ctx context.Context, id uuid.UUID, amount float64) error
	Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount float64, memo *string) (*models.TransferResult, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error)
}
