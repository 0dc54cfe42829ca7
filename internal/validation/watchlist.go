package validation

import (
	"strings"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
)

// ValidateCreateWatchlist validates a watchlist creation request. The owner
// is required at creation only; updates keep the existing owner.
func ValidateCreateWatchlist(req request.SaveWatchlistRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.UserID <= 0 {
		errors["userId"] = "userId is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateWatchlist validates a watchlist update request.
func ValidateUpdateWatchlist(req request.SaveWatchlistRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
