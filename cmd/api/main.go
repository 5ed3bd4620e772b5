package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/config"
	"github.com/orbitpay/wallet-backend/internal/db"
	"github.com/orbitpay/wallet-backend/internal/events"
	apphttp "github.com/orbitpay/wallet-backend/internal/http"
	"github.com/orbitpay/wallet-backend/internal/http/handlers"
	"github.com/orbitpay/wallet-backend/internal/keywords"
	"github.com/orbitpay/wallet-backend/internal/ledger"
	"github.com/orbitpay/wallet-backend/internal/repositories"
	"github.com/orbitpay/wallet-backend/internal/secrets"
	"github.com/orbitpay/wallet-backend/internal/services"
	"github.com/orbitpay/wallet-backend/migrations"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.MaxDBConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, migrations.FS(), log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	accountRepo := repositories.NewAccountRepo(pool)
	escrowRepo := repositories.NewEscrowRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	ledgerClient := ledger.NewHTTPClient(cfg.LedgerBaseURL, cfg.LedgerTimeout, log)
	cipher := secrets.NewPlaintext()
	userService := services.NewUserService(userRepo, ledgerClient, cipher, cfg, log)
	escrowService := services.NewEscrowService(userRepo, escrowRepo, ledgerClient, keywords.NewGenerator(), cipher, publisher, cfg, log)
	transferService := services.NewTransferService(accountRepo, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, log)
	walletHandler := handlers.NewWalletHandler(userService, log)
	escrowHandler := handlers.NewEscrowHandler(escrowService, log)
	txHandler := handlers.NewTransactionHandler(transferService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	wsHub.Start(ctx)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"status": "error", "message": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, authHandler, walletHandler, escrowHandler, txHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
