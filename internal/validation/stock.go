package validation

import (
	"strings"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
)

// ValidateSaveStock validates a stock create/update request.
func ValidateSaveStock(req request.SaveStockRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}

	if req.CurrentPrice < 0 {
		errors["currentPrice"] = "currentPrice cannot be negative"
	}

	if req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
