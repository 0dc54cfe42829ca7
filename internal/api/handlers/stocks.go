package handlers

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/response"
	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
	"github.com/stockfolio/portfolio-tracker-backend/internal/validation"
)

// StockHandler handles HTTP requests for stock endpoints.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new StockHandler with the provided service dependency.
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// StockResponse represents a stock in API responses. The same shape is used
// for stored rows and live-enriched quotes.
type StockResponse struct {
	ID            int64   `json:"id"`
	Symbol        string  `json:"symbol"`
	CompanyName   string  `json:"companyName"`
	CurrentPrice  float64 `json:"currentPrice"`
	Quantity      int     `json:"quantity"`
	TotalValue    float64 `json:"totalValue"`
	ChangePercent float64 `json:"changePercent"`
}

func stockResponseFromStock(s model.Stock) StockResponse {
	return StockResponse{
		ID:            s.ID,
		Symbol:        s.Symbol,
		CompanyName:   s.CompanyName,
		CurrentPrice:  s.CurrentPrice,
		Quantity:      s.Quantity,
		TotalValue:    s.TotalValue(),
		ChangePercent: 0,
	}
}

func stockResponseFromQuote(q model.StockQuote) StockResponse {
	return StockResponse{
		ID:            q.ID,
		Symbol:        q.Symbol,
		CompanyName:   q.CompanyName,
		CurrentPrice:  q.CurrentPrice,
		Quantity:      q.Quantity,
		TotalValue:    q.TotalValue,
		ChangePercent: q.ChangePercent,
	}
}

// CreateOrUpdateStock handles POST requests to create or update a stock.
//
// Endpoint: POST /stocks
// Response: 201 Created with StockResponse
// Error: 400 Bad Request if validation fails, 500 Internal Server Error otherwise
func (h *StockHandler) CreateOrUpdateStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSaveStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	stock, err := h.stockService.SaveStock(req)
	if err != nil {
		log.Printf("failed to save stock: %v", err)
		response.RespondError(w, http.StatusInternalServerError, "failed to save stock", nil)
		return
	}

	response.RespondJSON(w, http.StatusCreated, stockResponseFromStock(stock))
}

// AllStocks handles GET requests for the live-enriched stock listing. The
// optional apiKey query parameter overrides the configured provider key.
// This endpoint never fails: quote-provider problems degrade to the stored
// rows and storage problems degrade to an empty list.
//
// Endpoint: GET /stocks?apiKey=
// Response: 200 OK with array of StockResponse
func (h *StockHandler) AllStocks(w http.ResponseWriter, r *http.Request) {
	apiKey := r.URL.Query().Get("apiKey")

	quotes, err := h.stockService.GetAllStocksWithLivePrices(r.Context(), apiKey)
	if err != nil {
		log.Printf("failed to list stocks with live prices: %v", err)
		response.RespondJSON(w, http.StatusOK, []StockResponse{})
		return
	}

	resp := make([]StockResponse, len(quotes))
	for i, q := range quotes {
		resp[i] = stockResponseFromQuote(q)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetStockByID handles GET requests for a single stock.
//
// Endpoint: GET /stocks/{id}
// Response: 200 OK with StockResponse
// Error: 404 Not Found if the stock does not exist
func (h *StockHandler) GetStockByID(w http.ResponseWriter, r *http.Request) {
	stockID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	stock, err := h.stockService.GetStockByID(stockID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		log.Printf("failed to retrieve stock %d: %v", stockID, err)
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStock.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, stockResponseFromStock(stock))
}

// GetStockBySymbol handles GET requests for a single stock by ticker symbol.
// The lookup is case-insensitive.
//
// Endpoint: GET /stocks/symbol/{symbol}
// Response: 200 OK with StockResponse
// Error: 404 Not Found if the symbol is unknown
func (h *StockHandler) GetStockBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	stock, err := h.stockService.GetStockBySymbol(symbol)
	if err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		log.Printf("failed to retrieve stock %s: %v", symbol, err)
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveStock.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, stockResponseFromStock(stock))
}

// DeleteStockByID handles DELETE requests for a stock by ID.
//
// Endpoint: DELETE /stocks/{id}
// Response: 204 No Content
// Error: 404 Not Found if the stock does not exist
func (h *StockHandler) DeleteStockByID(w http.ResponseWriter, r *http.Request) {
	stockID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	if err := h.stockService.DeleteStockByID(stockID); err != nil {
		if errors.Is(err, apperrors.ErrStockNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
			return
		}
		log.Printf("failed to delete stock %d: %v", stockID, err)
		response.RespondError(w, http.StatusInternalServerError, "failed to delete stock", nil)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// DeleteStockBySymbol handles DELETE requests for a stock by symbol.
// Deleting an unknown symbol succeeds without touching the store.
//
// Endpoint: DELETE /stocks/symbol/{symbol}
// Response: 204 No Content
func (h *StockHandler) DeleteStockBySymbol(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	if err := h.stockService.DeleteStockBySymbol(symbol); err != nil {
		log.Printf("failed to delete stock %s: %v", symbol, err)
		response.RespondError(w, http.StatusInternalServerError, "failed to delete stock", nil)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// TotalValue handles GET requests for the global total value across all
// stored stock, independent of portfolio groupings.
//
// Endpoint: GET /stocks/total-value
// Response: 200 OK with a number
func (h *StockHandler) TotalValue(w http.ResponseWriter, r *http.Request) {
	total, err := h.stockService.GetTotalValue()
	if err != nil {
		log.Printf("failed to compute total stock value: %v", err)
		response.RespondJSON(w, http.StatusOK, 0.0)
		return
	}

	response.RespondJSON(w, http.StatusOK, total)
}

// StockHistory handles GET requests for a price time series. The data is a
// placeholder until a time-series provider is integrated: the last eight days
// mapped to pseudo-random prices around a fixed base.
//
// Endpoint: GET /stocks/history/{symbol}/{period}
// Response: 200 OK with map of date to price
func (h *StockHandler) StockHistory(w http.ResponseWriter, r *http.Request) {
	history := make(map[string]float64, 8)
	basePrice := 150.0
	now := time.Now().UTC()
	for i := 7; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		history[date] = basePrice + rand.Float64()*10 //nolint:gosec // placeholder data, not security sensitive
	}

	response.RespondJSON(w, http.StatusOK, history)
}
