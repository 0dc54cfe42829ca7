package validation

import (
	"strings"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
)

// ValidateSavePortfolio validates a portfolio create/update request.
func ValidateSavePortfolio(req request.SavePortfolioRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
