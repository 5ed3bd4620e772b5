package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/models"
)

type AccountRepo struct {
	pool PgxPool
}

func NewAccountRepo(pool PgxPool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func (r *AccountRepo) Create(ctx context.Context) (*models.Account, error) {
	var a models.Account
	err := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (balance) VALUES (0)
		RETURNING id, balance, created_at
	`).Scan(&a.ID, &a.Balance, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) GetBalance(ctx context.Context, id uuid.UUID) (float64, error) {
	var balance float64
	err := r.pool.QueryRow(ctx, `SELECT balance FROM accounts WHERE id = $1`, id).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperrors.ErrAccountNotFound
	}
	return balance, err
}

// Deposit adds funds outside of a transfer (test fixtures, top-ups).
func (r *AccountRepo) Deposit(ctx context.Context, id uuid.UUID, amount float64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET balance = balance + $1 WHERE id = $2`, amount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// Transfer moves amount between two accounts in one transaction. Both
// rows are locked FOR UPDATE in ascending id order, so two transfers in
// opposite directions always acquire locks in the same order and the
// sufficient-funds check reads a balance no concurrent transfer can
// still change.
func (r *AccountRepo) Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount float64, memo *string) (*models.TransferResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, balance FROM accounts
		WHERE id = $1 OR id = $2
		ORDER BY id
		FOR UPDATE
	`, sourceID, destinationID)
	if err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]float64, 2)
	for rows.Next() {
		var id uuid.UUID
		var balance float64
		if err := rows.Scan(&id, &balance); err != nil {
			rows.Close()
			return nil, err
		}
		balances[id] = balance
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sourceBalance, ok := balances[sourceID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if _, ok := balances[destinationID]; !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if sourceBalance < amount {
		return nil, apperrors.ErrInsufficientFunds
	}

	var newSourceBalance, newDestinationBalance float64
	err = tx.QueryRow(ctx, `
		UPDATE accounts SET balance = balance - $1 WHERE id = $2
		RETURNING balance
	`, amount, sourceID).Scan(&newSourceBalance)
	if err != nil {
		return nil, err
	}
	err = tx.QueryRow(ctx, `
		UPDATE accounts SET balance = balance + $1 WHERE id = $2
		RETURNING balance
	`, amount, destinationID).Scan(&newDestinationBalance)
	if err != nil {
		return nil, err
	}

	txID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, source_id, destination_id, amount, memo)
		VALUES ($1, $2, $3, $4, $5)
	`, txID, sourceID, destinationID, amount, memo)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.TransferResult{
		TransactionID:      txID,
		SourceBalance:      newSourceBalance,
		DestinationBalance: newDestinationBalance,
	}, nil
}

// ListTransactions returns the audit rows touching an account, newest
// first.
func (r *AccountRepo) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, source_id, destination_id, amount, memo, created_at
		FROM transactions
		WHERE source_id = $1 OR destination_id = $1
		ORDER BY created_at DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.SourceID, &t.DestinationID, &t.Amount, &t.Memo, &t.CreatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
