package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/config"
	"github.com/orbitpay/wallet-backend/internal/http/handlers"
	"github.com/orbitpay/wallet-backend/internal/middleware"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	authHandler *handlers.AuthHandler,
	walletHandler *handlers.WalletHandler,
	escrowHandler *handlers.EscrowHandler,
	txHandler *handlers.TransactionHandler,
	wsHub *handlers.WSHub,
) {
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	// Auth (public)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Ledger-backed wallet surface
	api.Get("/balance/:publicKey", walletHandler.GetBalance)
	api.Post("/escrow/initiate", escrowHandler.Initiate)
	api.Post("/escrow/claim", escrowHandler.Claim)

	// Ledgerless accounts and transfers
	api.Post("/accounts", txHandler.CreateAccount)
	api.Get("/accounts/:id/balance", txHandler.GetAccountBalance)
	api.Post("/accounts/:id/deposit", txHandler.Deposit)
	api.Post("/transactions", txHandler.CreateTransaction)
	api.Get("/transactions/:accountId", txHandler.ListTransactions)
	api.Post("/send", txHandler.Send)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))
	protected.Get("/wallet/:userId", walletHandler.GetWallet)
	protected.Get("/escrow/sent/:userId", escrowHandler.ListMine)

	// Live event feed
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
