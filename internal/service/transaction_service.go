package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/repository"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	portfolioRepo   *repository.PortfolioRepository
	stockRepo       *repository.StockRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	portfolioRepo *repository.PortfolioRepository,
	stockRepo *repository.StockRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		portfolioRepo:   portfolioRepo,
		stockRepo:       stockRepo,
	}
}

// CreateTransaction persists a new transaction. The referenced portfolio must
// exist. The stock side resolves in order: by ID, by symbol, and finally by
// creating a shell stock from the symbol (price set to the transaction's
// price per unit, quantity zero). A missing ID with no symbol is an invalid
// reference. The timestamp defaults to the current time.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (model.TransactionView, error) {
	exists, err := s.portfolioRepo.ExistsOnID(req.PortfolioID)
	if err != nil {
		return model.TransactionView{}, fmt.Errorf("failed to check portfolio: %w", err)
	}
	if !exists {
		return model.TransactionView{}, apperrors.ErrPortfolioNotFound
	}

	stock, err := s.resolveStock(req)
	if err != nil {
		return model.TransactionView{}, err
	}

	transactionDate := time.Now().UTC()
	if req.TransactionDate != "" {
		transactionDate, err = repository.ParseTime(req.TransactionDate)
		if err != nil {
			return model.TransactionView{}, err
		}
	}

	transaction := model.Transaction{
		PortfolioID:     req.PortfolioID,
		StockID:         stock.ID,
		Type:            req.TransactionType,
		Amount:          req.Amount,
		PricePerUnit:    req.PricePerUnit,
		TransactionDate: transactionDate,
	}

	if err := s.transactionRepo.InsertTransaction(&transaction); err != nil {
		return model.TransactionView{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	return model.TransactionView{
		ID:              transaction.ID,
		PortfolioID:     transaction.PortfolioID,
		StockID:         transaction.StockID,
		StockSymbol:     stock.Symbol,
		Type:            transaction.Type,
		Amount:          transaction.Amount,
		PricePerUnit:    transaction.PricePerUnit,
		TransactionDate: transaction.TransactionDate,
	}, nil
}

// resolveStock finds the stock a transaction refers to, creating a shell
// stock from the symbol when no stored row matches.
func (s *TransactionService) resolveStock(req request.CreateTransactionRequest) (model.Stock, error) {
	if req.StockID != 0 {
		stock, err := s.stockRepo.GetStockOnID(req.StockID)
		if err == nil {
			return stock, nil
		}
		if !errors.Is(err, apperrors.ErrStockNotFound) {
			return model.Stock{}, fmt.Errorf("failed to resolve stock: %w", err)
		}
		if req.StockSymbol == "" {
			return model.Stock{}, apperrors.ErrStockNotFound
		}
	}

	if req.StockSymbol == "" {
		return model.Stock{}, apperrors.ErrInvalidStockReference
	}

	stock, err := s.stockRepo.GetStockOnSymbol(req.StockSymbol)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, apperrors.ErrStockNotFound) {
		return model.Stock{}, fmt.Errorf("failed to resolve stock: %w", err)
	}

	// Unknown symbol: create a shell stock so the transaction has something
	// to reference. It starts with zero quantity and the transaction price.
	shell := model.Stock{
		Symbol:       req.StockSymbol,
		CompanyName:  "Unknown",
		CurrentPrice: req.PricePerUnit,
		Quantity:     0,
	}
	if err := s.stockRepo.SaveStock(&shell); err != nil {
		return model.Stock{}, fmt.Errorf("failed to create shell stock: %w", err)
	}

	return shell, nil
}

// GetAllTransactions retrieves every transaction with its resolved stock symbol.
func (s *TransactionService) GetAllTransactions() ([]model.TransactionView, error) {
	return s.transactionRepo.GetTransactions(0)
}

// GetTransactionsByPortfolio retrieves the transactions of one portfolio.
func (s *TransactionService) GetTransactionsByPortfolio(portfolioID int64) ([]model.TransactionView, error) {
	return s.transactionRepo.GetTransactions(portfolioID)
}

// GetTransactionByID retrieves a single transaction. Returns
// ErrTransactionNotFound when the ID does not exist.
func (s *TransactionService) GetTransactionByID(transactionID int64) (model.TransactionView, error) {
	return s.transactionRepo.GetTransactionOnID(transactionID)
}

// DeleteTransaction deletes a transaction after verifying it exists.
func (s *TransactionService) DeleteTransaction(transactionID int64) error {
	exists, err := s.transactionRepo.ExistsOnID(transactionID)
	if err != nil {
		return fmt.Errorf("failed to check transaction: %w", err)
	}
	if !exists {
		return apperrors.ErrTransactionNotFound
	}
	return s.transactionRepo.DeleteTransactionOnID(transactionID)
}
