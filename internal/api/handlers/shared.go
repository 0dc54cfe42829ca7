package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockfolio/portfolio-tracker-backend/internal/validation"
)

// parseJSON decodes a request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// idParam extracts and parses the named integer path parameter.
func idParam(r *http.Request, name string) (int64, error) {
	return validation.ParseID(chi.URLParam(r, name))
}
