package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/auth"
	"github.com/orbitpay/wallet-backend/internal/config"
	"github.com/orbitpay/wallet-backend/internal/ledger"
	"github.com/orbitpay/wallet-backend/internal/models"
	"github.com/orbitpay/wallet-backend/internal/secrets"
)

type UserService struct {
	users  UserStore
	ledger ledger.Client
	cipher secrets.Cipher
	cfg    *config.Config
	log    *zap.Logger
}

func NewUserService(users UserStore, ledgerClient ledger.Client, cipher secrets.Cipher, cfg *config.Config, log *zap.Logger) *UserService {
	return &UserService{users: users, ledger: ledgerClient, cipher: cipher, cfg: cfg, log: log}
}

type RegisterResult struct {
	User           *models.User
	StartingNative float64
}

// Register creates the user and their ledger keypair. If the ledger
// account cannot be created, no user row is written.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*RegisterResult, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUserExists
	}

	acct, err := s.ledger.CreateAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create ledger account: %w", err)
	}

	sealed, err := s.cipher.Seal(acct.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to seal account secret: %w", err)
	}

	u := &models.User{
		Username:  username,
		Email:     email,
		Password:  password,
		PublicKey: acct.Address,
		SecretKey: sealed,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("public_key", u.PublicKey),
	)

	return &RegisterResult{User: u, StartingNative: acct.NativeBalance}, nil
}

// Login checks credentials and issues a session token. Plaintext
// comparison mirrors what is stored; constant-time to avoid making a
// bad scheme worse.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, u.ID, u.Username, s.cfg.JWTExpiration)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetLedgerBalance proxies a balance lookup to the ledger gateway. A
// gateway 404 means the address does not exist on the ledger, which is
// the caller's mistake, not ours.
func (s *UserService) GetLedgerBalance(ctx context.Context, address string) (float64, error) {
	bal, err := s.ledger.GetBalance(ctx, address)
	if err != nil {
		var le *ledger.Error
		if errors.As(err, &le) && le.StatusCode == http.StatusNotFound {
			return 0, apperrors.ErrAccountNotFound
		}
		return 0, err
	}
	return bal.Native, nil
}
