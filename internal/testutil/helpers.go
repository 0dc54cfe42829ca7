package testutil

import (
	"database/sql"
	"testing"

	"github.com/stockfolio/portfolio-tracker-backend/internal/crypto"
	"github.com/stockfolio/portfolio-tracker-backend/internal/finnhub"
	"github.com/stockfolio/portfolio-tracker-backend/internal/repository"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
)

// NewTestStockService wires a StockService over the given database and quote
// client.
func NewTestStockService(t *testing.T, db *sql.DB, quoteClient finnhub.QuoteClient) *service.StockService {
	t.Helper()

	return service.NewStockService(
		repository.NewStockRepository(db),
		quoteClient,
	)
}

// NewTestPortfolioService wires a PortfolioService over the given database.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewPortfolioRepository(db),
		repository.NewStockRepository(db),
	)
}

// NewTestTransactionService wires a TransactionService over the given database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewPortfolioRepository(db),
		repository.NewStockRepository(db),
	)
}

// NewTestWatchlistService wires a WatchlistService over the given database.
func NewTestWatchlistService(t *testing.T, db *sql.DB) *service.WatchlistService {
	t.Helper()

	return service.NewWatchlistService(
		repository.NewWatchlistRepository(db),
		repository.NewStockRepository(db),
		repository.NewUserRepository(db),
	)
}

// NewTestUserService wires a UserService with a throwaway encryption key over
// the given database.
func NewTestUserService(t *testing.T, db *sql.DB) *service.UserService {
	t.Helper()

	encryptor, err := crypto.NewEncryptor("")
	if err != nil {
		t.Fatalf("Failed to create test encryptor: %v", err)
	}

	return service.NewUserService(
		repository.NewUserRepository(db),
		encryptor,
	)
}
