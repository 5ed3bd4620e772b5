package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/events"
	"github.com/orbitpay/wallet-backend/internal/ledger"
	"github.com/orbitpay/wallet-backend/internal/models"
)

// The fakes reproduce the stores' concurrency contracts in memory: a
// mutex plays the role of the row locks, so the services can be pounded
// with goroutines without a database.

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	s.users[u.ID] = u
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type fakeEscrowStore struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*models.EscrowTransaction
	failNth int // fail the nth Create call (1-based), 0 = never
	creates int
}

func newFakeEscrowStore() *fakeEscrowStore {
	return &fakeEscrowStore{rows: make(map[uuid.UUID]*models.EscrowTransaction)}
}

func (s *fakeEscrowStore) Create(_ context.Context, e *models.EscrowTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.failNth != 0 && s.creates == s.failNth {
		return context.DeadlineExceeded
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	cp := *e
	s.rows[e.ID] = &cp
	return nil
}

func (s *fakeEscrowStore) KeywordOpen(_ context.Context, keyword string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.rows {
		if e.KeywordPair == keyword && e.Status == models.EscrowStatusOpen {
			return true, nil
		}
	}
	return false, nil
}

// Claim mirrors the conditional UPDATE: check and flip under one lock.
func (s *fakeEscrowStore) Claim(_ context.Context, keyword string) (*models.EscrowTransaction, error) {
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

func (s *fakeEscrowStore) SetReleaseTxHash(_ context.Context, id uuid.UUID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.rows[id]; ok {
		e.ReleaseTxHash = &hash
	}
	return nil
}

func (s *fakeEscrowStore) ExpireDue(_ context.Context) ([]models.EscrowTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	var out []models.EscrowTransaction
	for _, e := range s.rows {
		if e.Status == models.EscrowStatusOpen && !e.ExpiresAt.After(now) {
			e.Status = models.EscrowStatusExpired
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEscrowStore) SetRefundTxHash(_ context.Context, id uuid.UUID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.rows[id]; ok {
		e.RefundTxHash = &hash
	}
	return nil
}

func (s *fakeEscrowStore) ListBySender(_ context.Context, senderUserID uuid.UUID) ([]models.EscrowTransaction, error) {
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

func (s *fakeEscrowStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type fakeAccountStore struct {
	mu       sync.Mutex
	balances map[uuid.UUID]float64
	txs      []models.Transaction
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{balances: make(map[uuid.UUID]float64)}
}

func (s *fakeAccountStore) Create(_ context.Context) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &models.Account{ID: uuid.New(), CreatedAt: time.Now()}
	s.balances[a.ID] = 0
	return a, nil
}

func (s *fakeAccountStore) GetBalance(_ context.Context, id uuid.UUID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.balances[id]
	if !ok {
		return 0, apperrors.ErrAccountNotFound
	}
	return b, nil
}

func (s *fakeAccountStore) Deposit(_ context.Context, id uuid.UUID, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.balances[id]; !ok {
		return apperrors.ErrAccountNotFound
	}
	s.balances[id] += amount
	return nil
}

// Transfer mirrors the repository's lock-check-move sequence: the whole
// move happens under one lock, as it does under FOR UPDATE.
func (s *fakeAccountStore) Transfer(_ context.Context, sourceID, destinationID uuid.UUID, amount float64, memo *string) (*models.TransferResult, error) {
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
	tx := models.Transaction{
		ID:            uuid.New(),
		SourceID:      sourceID,
		DestinationID: destinationID,
		Amount:        amount,
		Memo:          memo,
		CreatedAt:     time.Now(),
	}
	s.txs = append(s.txs, tx)
	return &models.TransferResult{
		TransactionID:      tx.ID,
		SourceBalance:      s.balances[sourceID],
		DestinationBalance: s.balances[destinationID],
	}, nil
}

func (s *fakeAccountStore) ListTransactions(_ context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
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

// fakeLedger counts transfers and can be told to fail.
type fakeLedger struct {
	mu            sync.Mutex
	accounts      int
	transfers     []fakeTransfer
	createErr     error
	balanceErr    error
	transferErr   error
	failTransferN int // fail the nth Transfer call (1-based), 0 = never
}

type fakeTransfer struct {
	SourceSecret string
	Destination  string
	Amount       float64
	Memo         string
}

func (l *fakeLedger) CreateAccount(context.Context) (*ledger.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.createErr != nil {
		return nil, l.createErr
	}
	l.accounts++
	n := l.accounts
	return &ledger.Account{
		Address:       "GADDR" + string(rune('0'+n%10)),
		Secret:        "SSECRET" + string(rune('0'+n%10)),
		NativeBalance: 10000,
	}, nil
}

func (l *fakeLedger) GetBalance(context.Context, string) (*ledger.Balance, error) {
	if l.balanceErr != nil {
		return nil, l.balanceErr
	}
	return &ledger.Balance{Native: 10000}, nil
}

func (l *fakeLedger) Transfer(_ context.Context, sourceSecret, destAddress string, amount float64, memo string) (*ledger.TransferResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.transfers) + 1
	if l.transferErr != nil && (l.failTransferN == 0 || l.failTransferN == n) {
		return nil, l.transferErr
	}
	l.transfers = append(l.transfers, fakeTransfer{sourceSecret, destAddress, amount, memo})
	return &ledger.TransferResult{Hash: "hash-" + memo}, nil
}

func (l *fakeLedger) transferCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.transfers)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, events.Event) error { return nil }
