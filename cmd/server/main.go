package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vlemaire/flashdeck/internal/api"
	"github.com/vlemaire/flashdeck/internal/auth"
	"github.com/vlemaire/flashdeck/internal/config"
	"github.com/vlemaire/flashdeck/internal/jobs"
	"github.com/vlemaire/flashdeck/internal/logger"
	"github.com/vlemaire/flashdeck/internal/repository"
	"github.com/vlemaire/flashdeck/internal/repository/jsonfile"
	"github.com/vlemaire/flashdeck/internal/repository/memory"
	"github.com/vlemaire/flashdeck/internal/repository/sqlite"
	"github.com/vlemaire/flashdeck/internal/services"
	"github.com/vlemaire/flashdeck/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("FlashDeck Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("storage_driver=%s", cfg.StorageDriver)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("flush_queue_size=%d", cfg.FlushQueueSize)
	log.Debug("log_level=%s", cfg.LogLevel)

	// Open snapshot store
	store, err := openStore(cfg)
	if err != nil {
		log.Error("failed to open snapshot store: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing snapshot store")
		store.Close()
	}()

	// Load persisted state into the in-memory repositories
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer loadCancel()

	cardRepo := memory.NewCardRepository()
	userRepo := memory.NewUserRepository()

	cards, err := store.LoadCards(loadCtx)
	if err != nil {
		log.Error("failed to load cards: %v", err)
		os.Exit(1)
	}
	if err := cardRepo.ReplaceAll(loadCtx, cards); err != nil {
		log.Error("failed to seed card repository: %v", err)
		os.Exit(1)
	}
	users, err := store.LoadUsers(loadCtx)
	if err != nil {
		log.Error("failed to load users: %v", err)
		os.Exit(1)
	}
	if err := userRepo.ReplaceAll(loadCtx, users); err != nil {
		log.Error("failed to seed user repository: %v", err)
		os.Exit(1)
	}
	log.Info("loaded %d cards and %d users from %s store", len(cards), len(users), cfg.StorageDriver)

	// A single flush worker keeps snapshots landing in submission order.
	flushPool := worker.NewPool(1, cfg.FlushQueueSize)
	flushQueue := jobs.NewWorkerQueue(flushPool, cardRepo, userRepo, store)

	jwtService, err := auth.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenMinutes)*time.Minute,
	)
	if err != nil {
		log.Error("failed to initialize token service: %v", err)
		os.Exit(1)
	}

	authService := services.NewAuthService(userRepo, jwtService, flushQueue)
	cardService := services.NewCardService(cardRepo, flushQueue)

	srv := api.NewServer(authService, cardService, jwtService)

	ctx, cancel := context.WithCancel(context.Background())
	flushPool.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping flush pool")
	cancel()
	flushPool.Stop()

	// Final synchronous flush so nothing queued after the last drain is lost.
	flush(shutdownCtx, log, cardRepo, userRepo, store)

	log.Info("===========================================")
	log.Info("FlashDeck Server Stopped")
	log.Info("===========================================")
}

func openStore(cfg config.Config) (repository.SnapshotStore, error) {
	if cfg.StorageDriver == config.DriverSQLite {
		return sqlite.Open(cfg.DBPath)
	}
	return jsonfile.New(cfg.DataDir)
}

func flush(
	ctx context.Context,
	log *logger.Logger,
	cardRepo repository.CardRepository,
	userRepo repository.UserRepository,
	store repository.SnapshotStore,
) {
	if cards, err := cardRepo.Snapshot(ctx); err != nil {
		log.Error("final card snapshot failed: %v", err)
	} else if err := store.SaveCards(ctx, cards); err != nil {
		log.Error("final card flush failed: %v", err)
	}
	if users, err := userRepo.Snapshot(ctx); err != nil {
		log.Error("final user snapshot failed: %v", err)
	} else if err := store.SaveUsers(ctx, users); err != nil {
		log.Error("final user flush failed: %v", err)
	}
}
