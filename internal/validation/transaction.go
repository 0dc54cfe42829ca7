package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionBuy: true, model.TransactionSell: true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - portfolioId: must be positive
//   - transactionType: must be BUY or SELL
//   - amount: must be positive
//   - pricePerUnit: must be positive
//   - stockId or stockSymbol: at least one must be present
//
// transactionDate is optional; when present it must parse as RFC3339 or
// YYYY-MM-DD.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if req.PortfolioID <= 0 {
		errors["portfolioId"] = "portfolioId is required"
	}

	if req.StockID <= 0 && strings.TrimSpace(req.StockSymbol) == "" {
		errors["stockId"] = "stockId or stockSymbol is required"
	}

	if strings.TrimSpace(req.TransactionType) == "" {
		errors["transactionType"] = "transactionType is required"
	} else if !ValidTransactionType[req.TransactionType] {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", req.TransactionType)
	}

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}

	if req.PricePerUnit <= 0.0 {
		errors["pricePerUnit"] = "pricePerUnit must be positive"
	}

	if req.TransactionDate != "" {
		if _, err := time.Parse(time.RFC3339, req.TransactionDate); err != nil {
			if _, err := time.Parse("2006-01-02", req.TransactionDate); err != nil {
				errors["transactionDate"] = err.Error()
			}
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
