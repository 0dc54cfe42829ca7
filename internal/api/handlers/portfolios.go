package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/response"
	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
	"github.com/stockfolio/portfolio-tracker-backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for portfolio endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// PortfolioResponse represents a portfolio in API responses. TotalValue is
// recomputed from the constituent stocks on every read.
type PortfolioResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TotalValue  float64 `json:"totalValue"`
	StockIDs    []int64 `json:"stockIds"`
}

func portfolioResponseFromView(v model.PortfolioView) PortfolioResponse {
	stockIDs := v.StockIDs
	if stockIDs == nil {
		stockIDs = []int64{}
	}
	return PortfolioResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		TotalValue:  v.TotalValue,
		StockIDs:    stockIDs,
	}
}

// SavePortfolio handles POST requests to create or update a portfolio. The
// stock set is replaced wholesale; unknown stock IDs are dropped.
//
// Endpoint: POST /portfolios
// Response: 201 Created with PortfolioResponse
// Error: 400 Bad Request if validation fails, 500 Internal Server Error otherwise
func (h *PortfolioHandler) SavePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SavePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSavePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	view, err := h.portfolioService.SavePortfolio(req)
	if err != nil {
		log.Printf("failed to save portfolio: %v", err)
		response.RespondError(w, http.StatusInternalServerError, "failed to save portfolio", nil)
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolioResponseFromView(view))
}

// AllPortfolios handles GET requests for the portfolio listing. Storage
// problems degrade to an empty list rather than an error.
//
// Endpoint: GET /portfolios
// Response: 200 OK with array of PortfolioResponse
func (h *PortfolioHandler) AllPortfolios(w http.ResponseWriter, r *http.Request) {
	views, err := h.portfolioService.GetAllPortfolios()
	if err != nil {
		log.Printf("failed to list portfolios: %v", err)
		response.RespondJSON(w, http.StatusOK, []PortfolioResponse{})
		return
	}

	resp := make([]PortfolioResponse, len(views))
	for i, view := range views {
		resp[i] = portfolioResponseFromView(view)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetPortfolioByID handles GET requests for a single portfolio.
//
// Endpoint: GET /portfolios/{id}
// Response: 200 OK with PortfolioResponse
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) GetPortfolioByID(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	view, err := h.portfolioService.GetPortfolioByID(portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), nil)
			return
		}
		log.Printf("failed to retrieve portfolio %d: %v", portfolioID, err)
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolioResponseFromView(view))
}

// DeletePortfolio handles DELETE requests for a portfolio. Join rows cascade;
// the portfolio's transactions are left in place.
//
// Endpoint: DELETE /portfolios/{id}
// Response: 204 No Content
// Error: 404 Not Found if the portfolio does not exist
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	if err := h.portfolioService.DeletePortfolio(portfolioID); err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), nil)
			return
		}
		log.Printf("failed to delete portfolio %d: %v", portfolioID, err)
		response.RespondError(w, http.StatusInternalServerError, "failed to delete portfolio", nil)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
