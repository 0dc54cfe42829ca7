package validation

import (
	"strings"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
)

// ValidateSaveUser validates a user create/update request.
func ValidateSaveUser(req request.SaveUserRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	}

	if strings.TrimSpace(req.Password) == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
