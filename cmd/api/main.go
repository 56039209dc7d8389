package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"travel-journal-bff/internal/client"
	"travel-journal-bff/internal/config"
	"travel-journal-bff/internal/logger"
	"travel-journal-bff/internal/repository"
	"travel-journal-bff/internal/server"
	"travel-journal-bff/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	store, closeStore, err := openLocalStore(context.Background(), &cfg.Storage)
	if err != nil {
		log.Fatal("open local store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()

	travelClient := client.NewTravelClient(&cfg.TravelAPI)

	sessionRepo := repository.NewSessionRepository(store, log)
	totalsRepo := repository.NewTotalsRepository(store, log)
	counterRepo := repository.NewCounterRepository(store)

	checkoutService := service.NewCheckoutService(travelClient, totalsRepo, log)

	services := server.Services{
		Auth:        service.NewAuthService(travelClient, sessionRepo, checkoutService, log),
		Cart:        service.NewCartService(travelClient, counterRepo, log),
		Checkout:    checkoutService,
		Transaction: service.NewTransactionService(travelClient, totalsRepo, log),
		Admin:       service.NewAdminService(travelClient, log),
		Catalog:     service.NewCatalogService(travelClient),
		Nav:         service.NewNavService(travelClient, counterRepo, log),
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(cfg, services, log)

	log.Info("starting HTTP server",
		zap.String("addr", serverAddr),
		zap.String("environment", cfg.Environment.Name),
		zap.String("storage", cfg.Storage.Driver))
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
}

// openLocalStore picks the backend for client-local values: a SQL table
// through gorm, or a redis hash per client.
func openLocalStore(ctx context.Context, cfg *config.Storage) (repository.LocalStore, func(), error) {
	if cfg.Driver == "redis" {
		rdb, err := client.InitRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisLocalStore(rdb), func() { _ = rdb.Close() }, nil
	}

	db, err := client.InitDBClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return repository.NewLocalStore(db), closeDB, nil
}
