package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/orbitpay/wallet-backend/internal/config"
	"github.com/orbitpay/wallet-backend/internal/db"
	"github.com/orbitpay/wallet-backend/internal/events"
	"github.com/orbitpay/wallet-backend/internal/keywords"
	"github.com/orbitpay/wallet-backend/internal/ledger"
	"github.com/orbitpay/wallet-backend/internal/repositories"
	"github.com/orbitpay/wallet-backend/internal/secrets"
	"github.com/orbitpay/wallet-backend/internal/services"
)

// The reaper expires overdue open escrows and refunds the sender. It
// shares the conditional-update claim path with the API, so running it
// alongside any number of API instances cannot double-settle a row.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, cfg.MaxDBConns, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	userRepo := repositories.NewUserRepo(pool)
	escrowRepo := repositories.NewEscrowRepo(pool)
	publisher := events.NewRedisPublisher(rdb, log)
	ledgerClient := ledger.NewHTTPClient(cfg.LedgerBaseURL, cfg.LedgerTimeout, log)
	escrowService := services.NewEscrowService(userRepo, escrowRepo, ledgerClient, keywords.NewGenerator(), secrets.NewPlaintext(), publisher, cfg, log)

	log.Info("reaper started", zap.Duration("interval", cfg.ReaperInterval))

	ticker := time.NewTicker(cfg.ReaperInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			n, err := escrowService.ExpireDue(ctx)
			if err != nil {
				log.Error("expiry sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("expired escrows settled", zap.Int("count", n))
			}
		case <-sigCh:
			log.Info("shutting down...")
			cancel()
			return
		}
	}
}
