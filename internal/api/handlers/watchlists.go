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

// WatchlistHandler handles HTTP requests for watchlist endpoints.
type WatchlistHandler struct {
	watchlistService *service.WatchlistService
}

// NewWatchlistHandler creates a new WatchlistHandler with the provided service dependency.
func NewWatchlistHandler(watchlistService *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// WatchlistResponse represents a watchlist in API responses.
type WatchlistResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	StockIDs []int64 `json:"stockIds"`
	UserID   int64   `json:"userId"`
}

func watchlistResponseFromView(v model.WatchlistView) WatchlistResponse {
	stockIDs := v.StockIDs
	if stockIDs == nil {
		stockIDs = []int64{}
	}
	return WatchlistResponse{
		ID:       v.ID,
		Name:     v.Name,
		StockIDs: stockIDs,
		UserID:   v.UserID,
	}
}

// CreateWatchlist handles POST requests to create a watchlist for an existing
// user. Unknown stock IDs are dropped from the set.
//
// Endpoint: POST /watchlists
// Response: 201 Created with WatchlistResponse
// Error: 400 Bad Request if validation fails, 404 Not Found if the user does
// not exist
func (h *WatchlistHandler) CreateWatchlist(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveWatchlistRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateWatchlist(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	view, err := h.watchlistService.CreateWatchlist(req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrUserNotFound.Error(), nil)
			return
		}
		log.Printf("failed to create watchlist: %v", err)
		response.RespondError(w, http.StatusInternalServerError, "failed to create watchlist", nil)
		return
	}

	response.RespondJSON(w, http.StatusCreated, watchlistResponseFromView(view))
}

// AllWatchlists handles GET requests for the watchlist listing.
//
// Endpoint: GET /watchlists
// Response: 200 OK with array of WatchlistResponse
func (h *WatchlistHandler) AllWatchlists(w http.ResponseWriter, r *http.Request) {
	views, err := h.watchlistService.GetAllWatchlists()
	if err != nil {
		log.Printf("failed to list watchlists: %v", err)
		response.RespondJSON(w, http.StatusOK, []WatchlistResponse{})
		return
	}

	resp := make([]WatchlistResponse, len(views))
	for i, view := range views {
		resp[i] = watchlistResponseFromView(view)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetWatchlistByID handles GET requests for a single watchlist.
//
// Endpoint: GET /watchlists/{id}
// Response: 200 OK with WatchlistResponse
// Error: 404 Not Found if the watchlist does not exist
func (h *WatchlistHandler) GetWatchlistByID(w http.ResponseWriter, r *http.Request) {
	watchlistID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	view, err := h.watchlistService.GetWatchlistByID(watchlistID)
	if err != nil {
		if errors.Is(err, apperrors.ErrWatchlistNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWatchlistNotFound.Error(), nil)
			return
		}
		log.Printf("failed to retrieve watchlist %d: %v", watchlistID, err)
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveWatchlist.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, watchlistResponseFromView(view))
}

// UpdateWatchlist handles PUT requests to replace a watchlist's name and
// stock set. The owner never changes on update.
//
// Endpoint: PUT /watchlists/{id}
// Response: 200 OK with WatchlistResponse
// Error: 400 Bad Request if validation fails, 404 Not Found if the watchlist
// does not exist
func (h *WatchlistHandler) UpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	watchlistID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	req, err := parseJSON[request.SaveWatchlistRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateWatchlist(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	view, err := h.watchlistService.UpdateWatchlist(watchlistID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrWatchlistNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWatchlistNotFound.Error(), nil)
			return
		}
		log.Printf("failed to update watchlist %d: %v", watchlistID, err)
		response.RespondError(w, http.StatusInternalServerError, "failed to update watchlist", nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, watchlistResponseFromView(view))
}

// DeleteWatchlist handles DELETE requests for a watchlist. Join rows cascade.
//
// Endpoint: DELETE /watchlists/{id}
// Response: 204 No Content
// Error: 404 Not Found if the watchlist does not exist
func (h *WatchlistHandler) DeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	watchlistID, err := idParam(r, "id")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
		return
	}

	if err := h.watchlistService.DeleteWatchlist(watchlistID); err != nil {
		if errors.Is(err, apperrors.ErrWatchlistNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrWatchlistNotFound.Error(), nil)
			return
		}
		log.Printf("failed to delete watchlist %d: %v", watchlistID, err)
		response.RespondError(w, http.StatusInternalServerError, "failed to delete watchlist", nil)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
