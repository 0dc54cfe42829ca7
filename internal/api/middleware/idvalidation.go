package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/response"
)

// ValidateIDParam returns a middleware that rejects requests whose {param}
// path value is not a positive integer, before the handler runs.
func ValidateIDParam(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, param)
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				response.RespondError(w, http.StatusBadRequest, "invalid ID format", raw)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
