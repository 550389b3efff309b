package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pitchdrop/auth-core/internal/config"
	"github.com/pitchdrop/auth-core/internal/logging"
	"github.com/pitchdrop/auth-core/internal/repository/postgres"
	"github.com/pitchdrop/auth-core/internal/service"
	"github.com/pitchdrop/auth-core/internal/sms"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logging.Setup(cfg.Environment)

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	repos := postgres.NewRepositories(db)
	services := service.NewServices(repos, cfg, sms.NewConsoleSender(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Periodic expired-session sweep; validation also reaps lazily, this
	// catches sessions that were never presented again.
	go runSweeper(ctx, services.Sessions, cfg.SweepInterval)

	slog.Info("authd running", "sweep_interval", cfg.SweepInterval.String())

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cancel()
}

func runSweeper(ctx context.Context, sessions *service.SessionStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := sessions.SweepExpired(ctx)
			if err != nil {
				slog.Error("session sweep failed", "error", err)
				continue
			}
			if count > 0 {
				slog.Info("swept expired sessions", "count", count)
			}
		}
	}
}
