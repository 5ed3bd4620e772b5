package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/apperrors"
	"github.com/orbitpay/wallet-backend/internal/http/dto"
)

// respondError maps business errors onto the HTTP taxonomy: validation
// and rule violations are 400, missing resources 404, bad credentials
// 401, anything else a generic 500 with the detail kept in the log.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrSameAccount),
		errors.Is(err, apperrors.ErrUserExists),
		errors.Is(err, apperrors.ErrKeywordSpaceExhausted):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Status: "error", Message: err.Error()})
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound),
		errors.Is(err, apperrors.ErrEscrowNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Status: "error", Message: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Status: "error", Message: err.Error()})
	default:
		log.Error("request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Status: "error", Message: "internal server error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Status: "error", Message: msg})
}
