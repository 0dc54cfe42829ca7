package handlers

import (
	"net/http"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/response"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
)

// SystemHandler handles system-level HTTP requests.
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler with the provided service dependency.
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// Health handles GET requests for the health check endpoint.
//
// Endpoint: GET /system/health
// Response: 200 OK if the database is reachable, 503 Service Unavailable otherwise
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.systemService.Health(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
