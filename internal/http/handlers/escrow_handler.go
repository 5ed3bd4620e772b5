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

type EscrowHandler struct {
	escrow *services.EscrowService
	log    *zap.Logger
}

func NewEscrowHandler(escrow *services.EscrowService, log *zap.Logger) *EscrowHandler {
	return &EscrowHandler{escrow: escrow, log: log}
}

func (h *EscrowHandler) Initiate(c *fiber.Ctx) error {
	var req dto.EscrowInitiateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" || req.Amount == 0 {
		return badRequest(c, "userId and amount are required")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	e, err := h.escrow.Initiate(c.Context(), userID, req.Amount)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.EscrowInitiateResponse{
		Status:          "success",
		KeywordPair:     e.KeywordPair,
		EscrowPublicKey: e.EscrowAddress,
		ExpiresAt:       e.ExpiresAt,
	})
}

func (h *EscrowHandler) Claim(c *fiber.Ctx) error {
	var req dto.EscrowClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.UserID == "" || req.KeywordPair == "" {
		return badRequest(c, "userId and keywordPair are required")
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	hash, err := h.escrow.Claim(c.Context(), userID, req.KeywordPair)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.EscrowClaimResponse{Status: "success", Hash: hash})
}

// ListMine returns the caller's sent escrows, newest first. The keyword
// is included so a sender can re-share a token they lost, which is
// exactly why the listing is restricted to the authenticated sender:
// the keyword is the claim credential.
func (h *EscrowHandler) ListMine(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}
	if userID != middleware.GetUserID(c) {
		return respondError(c, h.log, apperrors.ErrEscrowNotFound)
	}

	list, err := h.escrow.ListBySender(c.Context(), userID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"status": "success", "escrows": list})
}
