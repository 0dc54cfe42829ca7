// Package validation checks API request bodies and path parameters before
// they reach the service layer.
package validation

import (
	"fmt"
	"strconv"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
)

// ParseID parses a path parameter as a positive integer identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrInvalidID, raw)
	}
	return id, nil
}
