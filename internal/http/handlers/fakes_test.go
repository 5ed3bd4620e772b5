package handlers_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/config"
	"github.com/orbitpay/wallet-backend/internal/events"
	"github.com/orbitpay/wallet-backend/internal/ledger"
	"github.com/orbitpay/wallet-backend/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		EscrowTTL:          24 * time.Hour,
		KeywordMaxAttempts: 5,
		JWTSecret:          "test-secret",
		JWTExpiration:      time.Hour,
		RateLimitPerMinute: 100,
	}
}

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserStore(users ...*models.User) *memUserStore {
	s := &memUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = uuid.New()
	s.users[u.ID] = u
	return nil
}

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *memUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

type memEscrowStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.EscrowTransaction
}

func newMemEscrowStore() *memEscrowStore {
	return &memEscrowStore{rows: make(map[uuid.UUID]*models.EscrowTransaction)}
}

func (s *memEscrowStore) Create(_ context.Context, e *models.EscrowTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.New()
	cp := *e
	s.rows[e.ID] = &cp
	return nil
}

func (s *memEscrowStore) KeywordOpen(_ context.Context, keyword string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.rows {
		if e.KeywordPair == keyword && e.Status == models.EscrowStatusOpen {
			return true, nil
		}
	}
	return false, nil
}

func (s *memEscrowStore) Claim(_ context.Context, keyword string) (*models.EscrowTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, e := range s.rows {
		if e.KeywordPair == keyword && e.Status == models.EscrowStatusOpen && e.ExpiresAt.After(now) {
			e.Status = models.EscrowStatusClaimed
			e.ClaimedAt = &now
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperrors.ErrEscrowNotFound
}

func (s *memEscrowStore) SetReleaseTxHash(_ context.Context, id uuid.UUID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.rows[id]; ok {
		e.ReleaseTxHash = &hash
	}
	return nil
}

func (s *memEscrowStore) ExpireDue(context.Context) ([]models.EscrowTransaction, error) {
	return nil, nil
}

func (s *memEscrowStore) SetRefundTxHash(context.Context, uuid.UUID, string) error { return nil }

func (s *memEscrowStore) ListBySender(_ context.Context, senderUserID uuid.UUID) ([]models.EscrowTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.EscrowTransaction
	for _, e := range s.rows {
		if e.SenderUserID == senderUserID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type memAccountStore struct {
	mu       sync.Mutex
	balances map[uuid.UUID]float64
	txs      []models.Transaction
}

func newMemAccountStore() *memAccountStore {
	return &memAccountStore{balances: make(map[uuid.UUID]float64)}
}

func (s *memAccountStore) Create(context.Context) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &models.Account{ID: uuid.New()}
	s.balances[a.ID] = 0
	return a, nil
}

func (s *memAccountStore) GetBalance(_ context.Context, id uuid.UUID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[id]
	if !ok {
		return 0, apperrors.ErrAccountNotFound
	}
	return b, nil
}

func (s *memAccountStore) Deposit(_ context.Context, id uuid.UUID, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[id]; !ok {
		return apperrors.ErrAccountNotFound
	}
	s.balances[id] += amount
	return nil
}

func (s *memAccountStore) Transfer(_ context.Context, sourceID, destinationID uuid.UUID, amount float64, memo *string) (*models.TransferResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, ok := s.balances[sourceID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if _, ok := s.balances[destinationID]; !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	if src < amount {
		return nil, apperrors.ErrInsufficientFunds
	}
	s.balances[sourceID] -= amount
	s.balances[destinationID] += amount
	tx := models.Transaction{ID: uuid.New(), SourceID: sourceID, DestinationID: destinationID, Amount: amount, Memo: memo}
	s.txs = append(s.txs, tx)
	return &models.TransferResult{
		TransactionID:      tx.ID,
		SourceBalance:      s.balances[sourceID],
		DestinationBalance: s.balances[destinationID],
	}, nil
}

func (s *memAccountStore) ListTransactions(_ context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, t := range s.txs {
		if t.SourceID == accountID || t.DestinationID == accountID {
			out = append(out, t)
		}
	}
	return out, nil
}

type memLedger struct {
	mu       sync.Mutex
	seq      int
	failNext error
}

func (l *memLedger) CreateAccount(context.Context) (*ledger.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	return &ledger.Account{Address: "GADDR", Secret: "SSECRET", NativeBalance: 10000}, nil
}

func (l *memLedger) GetBalance(context.Context, string) (*ledger.Balance, error) {
	return &ledger.Balance{Native: 10000}, nil
}

func (l *memLedger) Transfer(_ context.Context, _, _ string, _ float64, memo string) (*ledger.TransferResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failNext != nil {
		err := l.failNext
		l.failNext = nil
		return nil, err
	}
	return &ledger.TransferResult{Hash: "hash-" + memo}, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, events.Event) error { return nil }
