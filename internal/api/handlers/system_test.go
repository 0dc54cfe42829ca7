package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/handlers"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
	"github.com/stockfolio/portfolio-tracker-backend/internal/testutil"
)

// TestSystemHandler_Health tests GET /system/health.
func TestSystemHandler_Health(t *testing.T) {
	t.Run("healthy database returns 200", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		response := testutil.DecodeJSON[map[string]string](t, w)
		if response["status"] != "healthy" {
			t.Errorf("status = %q, want healthy", response["status"])
		}
	})

	t.Run("closed database returns 503", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})
}
