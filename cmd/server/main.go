package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/handlers"
	"github.com/stockfolio/portfolio-tracker-backend/internal/config"
	"github.com/stockfolio/portfolio-tracker-backend/internal/crypto"
	"github.com/stockfolio/portfolio-tracker-backend/internal/database"
	"github.com/stockfolio/portfolio-tracker-backend/internal/finnhub"
	"github.com/stockfolio/portfolio-tracker-backend/internal/repository"
	"github.com/stockfolio/portfolio-tracker-backend/internal/scheduler"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("failed to create database directory: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	encryptor, err := crypto.NewEncryptor(cfg.Security.FernetSecret)
	if err != nil {
		log.Fatalf("failed to initialize encryptor: %v", err)
	}

	quoteClient := finnhub.NewClient(finnhub.Config{
		APIKey:       cfg.Finnhub.APIKey,
		ExchangeRate: cfg.Finnhub.USDRate,
	})

	stockRepo := repository.NewStockRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	userRepo := repository.NewUserRepository(db)

	stockService := service.NewStockService(stockRepo, quoteClient)
	portfolioService := service.NewPortfolioService(portfolioRepo, stockRepo)
	transactionService := service.NewTransactionService(transactionRepo, portfolioRepo, stockRepo)
	watchlistService := service.NewWatchlistService(watchlistRepo, stockRepo, userRepo)
	userService := service.NewUserService(userRepo, encryptor)
	systemService := service.NewSystemService(db)

	router := api.NewRouter(api.Handlers{
		Stock:       handlers.NewStockHandler(stockService),
		Portfolio:   handlers.NewPortfolioHandler(portfolioService),
		Transaction: handlers.NewTransactionHandler(transactionService),
		Watchlist:   handlers.NewWatchlistHandler(watchlistService),
		User:        handlers.NewUserHandler(userService),
		System:      handlers.NewSystemHandler(systemService),
	}, cfg.CORS.AllowedOrigins)

	sched := scheduler.New(stockService)
	if err := sched.Start(cfg.Scheduler.PriceRefreshSchedule); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
