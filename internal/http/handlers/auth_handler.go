package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/http/dto"
	"github.com/orbitpay/wallet-backend/internal/services"
)

type AuthHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewAuthHandler(users *services.UserService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "username, email and password are required")
	}

	res, err := h.users.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Status:         "success",
		UserID:         res.User.ID.String(),
		PublicKey:      res.User.PublicKey,
		StartingNative: res.StartingNative,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	u, token, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.LoginResponse{
		Status:    "success",
		Token:     token,
		UserID:    u.ID.String(),
		Username:  u.Username,
		PublicKey: u.PublicKey,
	})
}
