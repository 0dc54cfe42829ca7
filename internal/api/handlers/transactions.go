package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/response"
	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
	"github.com/stockfolio/portfolio-tracker-backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// TransactionResponse represents a transaction in API responses. StockSymbol
// is resolved at read time and may be empty when the referenced stock has
// since been deleted.
type TransactionResponse struct {
	ID              int64   `json:"id"`
	PortfolioID     int64   `json:"portfolioId"`
	StockID         int64   `json:"stockId"`
	StockSymbol     string  `json:"stockSymbol"`
	TransactionType string  `json:"transactionType"`
	Amount          float64 `json:"amount"`
	PricePerUnit    float64 `json:"pricePerUnit"`
	TransactionDate string  `json:"transactionDate"`
}

func transactionResponseFromView(v model.TransactionView) TransactionResponse {
	return TransactionResponse{
		ID:              v.ID,
		PortfolioID:     v.PortfolioID,
		StockID:         v.StockID,
		StockSymbol:     v.StockSymbol,
		TransactionType: v.Type,
		Amount:          v.Amount,
		PricePerUnit:    v.PricePerUnit,
		TransactionDate: v.TransactionDate.Format(time.RFC3339),
	}
}

// CreateTransaction handles POST requests to record a buy or sell.
//
// Endpoint: POST /transactions
// Response: 201 Created with TransactionResponse
// Error: 400 Bad Request if validation fails or the stock reference is
// unusable, 404 Not Found if the portfolio or referenced stock does not
// exist, 500 Internal Server Error otherwise
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	view, err := h.transactionService.CreateTransaction(req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPortfolioNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPortfolioNotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrStockNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrStockNotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrInvalidStockReference):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidStockReference.Error(), nil)
		default:
			log.Printf("failed to create transaction: %v", err)
			response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", nil)
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, transactionResponseFromView(view))
}

// AllTransactions handles GET requests for every transaction across all
// portfolios, oldest first.
//
// Endpoint: GET /transactions
// Response: 200 OK with array of TransactionResponse
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	views, err := h.transactionService.GetAllTransactions()
	if err != nil {
		log.Printf("failed to list transactions: %v", err)
		response.RespondJSON(w, http.StatusOK, []TransactionResponse{})
		return
	}

	response.RespondJSON(w, http.StatusOK, transactionResponses(views))
}

// TransactionsByPortfolio handles GET requests for one portfolio's
// transactions. An unknown portfolio ID yields an empty array, matching the
// listing semantics rather than a lookup.
//
// Endpoint: GET /transactions/portfolio/{portfolioId}
// Response: 200 OK with array of TransactionResponse
func (h *TransactionHandler) TransactionsByPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID, err := idParam(r, "portfolioId")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	views, err := h.transactionService.GetTransactionsByPortfolio(portfolioID)
	if err != nil {
		log.Printf("failed to list transactions for portfolio %d: %v", portfolioID, err)
		response.RespondJSON(w, http.StatusOK, []TransactionResponse{})
		return
	}

	response.RespondJSON(w, http.StatusOK, transactionResponses(views))
}

// GetTransactionByID handles GET requests for a single transaction.
//
// Endpoint: GET /transactions/{id}
// Response: 200 OK with TransactionResponse
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) GetTransactionByID(w http.ResponseWriter, r *http.Request) {
	transactionID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	view, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), nil)
			return
		}
		log.Printf("failed to retrieve transaction %d: %v", transactionID, err)
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactionResponseFromView(view))
}

// DeleteTransaction handles DELETE requests for a transaction. Deleting a
// transaction never adjusts stock quantities or prices.
//
// Endpoint: DELETE /transactions/{id}
// Response: 204 No Content
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), nil)
			return
		}
		log.Printf("failed to delete transaction %d: %v", transactionID, err)
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", nil)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func transactionResponses(views []model.TransactionView) []TransactionResponse {
	resp := make([]TransactionResponse, len(views))
	for i, view := range views {
		resp[i] = transactionResponseFromView(view)
	}
	return resp
}
