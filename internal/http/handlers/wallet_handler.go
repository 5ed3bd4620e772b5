package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/http/dto"
	"github.com/orbitpay/wallet-backend/internal/middleware"
	"github.com/orbitpay/wallet-backend/internal/services"
)

type WalletHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewWalletHandler(users *services.UserService, log *zap.Logger) *WalletHandler {
	return &WalletHandler{users: users, log: log}
}

// GetWallet returns the caller's public key. Auth-guarded; a caller can
// only look up their own wallet.
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	if id != middleware.GetUserID(c) {
		return respondError(c, h.log, apperrors.ErrUserNotFound)
	}

	u, err := h.users.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.WalletResponse{
		Status:    "success",
		UserID:    u.ID.String(),
		Username:  u.Username,
		PublicKey: u.PublicKey,
	})
}

// GetBalance proxies a ledger balance lookup for any public key.
func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	publicKey := c.Params("publicKey")
	if publicKey == "" {
		return badRequest(c, "public key is required")
	}

	native, err := h.users.GetLedgerBalance(c.Context(), publicKey)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.BalanceResponse{
		Status:    "success",
		PublicKey: publicKey,
		Native:    native,
	})
}
