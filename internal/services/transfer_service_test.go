package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
)

func newTransferService(accounts AccountStore) *TransferService {
	return NewTransferService(accounts, nopPublisher{}, zap.NewNop())
}

func TestTransfer(t *testing.T) {
	store := newFakeAccountStore()
	svc := newTransferService(store)
	ctx := context.Background()

	src, err := svc.CreateAccount(ctx)
	require.NoError(t, err)
	dst, err := svc.CreateAccount(ctx)
	require.NoError(t, err)
	store.balances[src.ID] = 100

	memo := "rent"
	res, err := svc.Transfer(ctx, src.ID, dst.ID, 40, &memo)
	require.NoError(t, err)

	assert.Equal(t, 60.0, res.SourceBalance)
	assert.Equal(t, 40.0, res.DestinationBalance)
	assert.NotEqual(t, uuid.Nil, res.TransactionID)

	txs, err := svc.ListTransactions(ctx, src.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 40.0, txs[0].Amount)
	require.NotNil(t, txs[0].Memo)
	assert.Equal(t, "rent", *txs[0].Memo)
}

func TestTransferValidation(t *testing.T) {
	store := newFakeAccountStore()
	svc := newTransferService(store)
	ctx := context.Background()

	src, _ := svc.CreateAccount(ctx)
	dst, _ := svc.CreateAccount(ctx)
	store.balances[src.ID] = 100

	_, err := svc.Transfer(ctx, src.ID, dst.ID, 0, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = svc.Transfer(ctx, src.ID, dst.ID, -5, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = svc.Transfer(ctx, src.ID, src.ID, 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrSameAccount)

	_, err = svc.Transfer(ctx, src.ID, dst.ID, 500, nil)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	_, err = svc.Transfer(ctx, uuid.New(), dst.ID, 10, nil)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	// No audit rows for rejected moves.
	txs, err := svc.ListTransactions(ctx, src.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

// Hammering the same pair from both directions must neither create nor
// destroy money, and no balance may dip below zero.
func TestTransferConcurrentConservation(t *testing.T) {
	store := newFakeAccountStore()
	svc := newTransferService(store)
	ctx := context.Background()

	a, _ := svc.CreateAccount(ctx)
	b, _ := svc.CreateAccount(ctx)
	store.balances[a.ID] = 500
	store.balances[b.ID] = 500

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = svc.Transfer(ctx, a.ID, b.ID, 30, nil)
			} else {
				_, _ = svc.Transfer(ctx, b.ID, a.ID, 30, nil)
			}
		}(i)
	}
	wg.Wait()

	balA, err := svc.GetBalance(ctx, a.ID)
	require.NoError(t, err)
	balB, err := svc.GetBalance(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, balA+balB)
	assert.GreaterOrEqual(t, balA, 0.0)
	assert.GreaterOrEqual(t, balB, 0.0)
}
