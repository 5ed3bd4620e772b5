package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/models"
)

type EscrowRepo struct {
	pool PgxPool
}

func NewEscrowRepo(pool PgxPool) *EscrowRepo {
	return &EscrowRepo{pool: pool}
}

func (r *EscrowRepo) Create(ctx context.Context, e *models.EscrowTransaction) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO escrow_transactions (
			keyword_pair, sender_user_id, escrow_address, escrow_secret,
			amount, memo, status, funding_tx_hash, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, e.KeywordPair, e.SenderUserID, e.EscrowAddress, e.EscrowSecret,
		e.Amount, e.Memo, e.Status, e.FundingTxHash, e.ExpiresAt,
	).Scan(&e.ID, &e.CreatedAt)
}

// KeywordOpen reports whether a live escrow already uses the keyword.
// Best-effort pre-check; the partial unique index is the real guard.
func (r *EscrowRepo) KeywordOpen(ctx context.Context, keyword string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM escrow_transactions
			WHERE keyword_pair = $1 AND status = 'open'
		)
	`, keyword).Scan(&exists)
	return exists, err
}

// Claim flips the matching open, unexpired escrow to claimed and returns
// it. The conditional UPDATE is the sole serialization point of the
// claim path: of any number of concurrent attempts on one keyword,
// exactly one sees a row; the rest get ErrEscrowNotFound, and the ledger
// release is never attempted twice.
func (r *EscrowRepo) Claim(ctx context.Context, keyword string) (*models.EscrowTransaction, error) {
	var e models.EscrowTransaction
	err := r.pool.QueryRow(ctx, `
		UPDATE escrow_transactions
		SET status = 'claimed', claimed_at = now()
		WHERE keyword_pair = $1 AND status = 'open' AND expires_at > now()
		RETURNING id, keyword_pair, sender_user_id, escrow_address, escrow_secret,
		          amount, memo, status, funding_tx_hash, release_tx_hash,
		          refund_tx_hash, claimed_at, expires_at, created_at
	`, keyword).Scan(
		&e.ID, &e.KeywordPair, &e.SenderUserID, &e.EscrowAddress, &e.EscrowSecret,
		&e.Amount, &e.Memo, &e.Status, &e.FundingTxHash, &e.ReleaseTxHash,
		&e.RefundTxHash, &e.ClaimedAt, &e.ExpiresAt, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrEscrowNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EscrowRepo) SetReleaseTxHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE escrow_transactions SET release_tx_hash = $1
		WHERE id = $2 AND status = 'claimed'
	`, hash, id)
	return err
}

// ExpireDue flips every overdue open escrow to expired and returns the
// rows so the caller can refund them. Uses the same conditional-update
// shape as Claim, so reaper and claimers can never both win a row.
func (r *EscrowRepo) ExpireDue(ctx context.Context) ([]models.EscrowTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE escrow_transactions
		SET status = 'expired'
		WHERE status = 'open' AND expires_at <= now()
		RETURNING id, keyword_pair, sender_user_id, escrow_address, escrow_secret,
		          amount, memo, status, funding_tx_hash, release_tx_hash,
		          refund_tx_hash, claimed_at, expires_at, created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EscrowTransaction
	for rows.Next() {
		var e models.EscrowTransaction
		if err := rows.Scan(
			&e.ID, &e.KeywordPair, &e.SenderUserID, &e.EscrowAddress, &e.EscrowSecret,
			&e.Amount, &e.Memo, &e.Status, &e.FundingTxHash, &e.ReleaseTxHash,
			&e.RefundTxHash, &e.ClaimedAt, &e.ExpiresAt, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EscrowRepo) SetRefundTxHash(ctx context.Context, id uuid.UUID, hash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE escrow_transactions SET refund_tx_hash = $1
		WHERE id = $2 AND status = 'expired'
	`, hash, id)
	return err
}

// ListBySender returns a user's escrows, newest first, for the history
// view.
func (r *EscrowRepo) ListBySender(ctx context.Context, senderUserID uuid.UUID) ([]models.EscrowTransaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, keyword_pair, sender_user_id, escrow_address, escrow_secret,
		       amount, memo, status, funding_tx_hash, release_tx_hash,
		       refund_tx_hash, claimed_at, expires_at, created_at
		FROM escrow_transactions
		WHERE sender_user_id = $1
		ORDER BY created_at DESC
	`, senderUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EscrowTransaction
	for rows.Next() {
		var e models.EscrowTransaction
		if err := rows.Scan(
			&e.ID, &e.KeywordPair, &e.SenderUserID, &e.EscrowAddress, &e.EscrowSecret,
			&e.Amount, &e.Memo, &e.Status, &e.FundingTxHash, &e.ReleaseTxHash,
			&e.RefundTxHash, &e.ClaimedAt, &e.ExpiresAt, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
