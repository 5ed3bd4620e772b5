package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/http/dto"
	"github.com/orbitpay/wallet-backend/internal/services"
)

type TransactionHandler struct {
	transfers *services.TransferService
	log       *zap.Logger
}

func NewTransactionHandler(transfers *services.TransferService, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{transfers: transfers, log: log}
}

func (h *TransactionHandler) CreateAccount(c *fiber.Ctx) error {
	acct, err := h.transfers.CreateAccount(c.Context())
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AccountResponse{
		Status:  "success",
		ID:      acct.ID.String(),
		Balance: acct.Balance,
	})
}

func (h *TransactionHandler) GetAccountBalance(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	balance, err := h.transfers.GetBalance(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.AccountResponse{
		Status:  "success",
		ID:      id.String(),
		Balance: balance,
	})
}

func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}
	var req dto.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	balance, err := h.transfers.Deposit(c.Context(), id, req.Amount)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.AccountResponse{
		Status:  "success",
		ID:      id.String(),
		Balance: balance,
	})
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return h.execTransfer(c, req.SourceID, req.DestinationID, req.Amount, req.Memo)
}

// Send is the legacy alias: same transfer, older field names.
func (h *TransactionHandler) Send(c *fiber.Ctx) error {
	var req dto.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	return h.execTransfer(c, req.UserID, req.DestinationKey, req.Amount, req.Memo)
}

func (h *TransactionHandler) execTransfer(c *fiber.Ctx, source, destination string, amount float64, memo *string) error {
	if source == "" || destination == "" {
		return badRequest(c, "source and destination are required")
	}
	sourceID, err := uuid.Parse(source)
	if err != nil {
		return badRequest(c, "invalid source account id")
	}
	destinationID, err := uuid.Parse(destination)
	if err != nil {
		return badRequest(c, "invalid destination account id")
	}

	res, err := h.transfers.Transfer(c.Context(), sourceID, destinationID, amount, memo)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		Status:             "success",
		TransactionID:      res.TransactionID.String(),
		SourceBalance:      res.SourceBalance,
		DestinationBalance: res.DestinationBalance,
	})
}

func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	accountID, err := uuid.Parse(c.Params("accountId"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	txs, err := h.transfers.ListTransactions(c.Context(), accountID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"status": "success", "transactions": txs})
}
