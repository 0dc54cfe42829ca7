package service

import (
	"fmt"
	"log"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/repository"
)

// WatchlistService handles watchlist-related business logic operations.
type WatchlistService struct {
	watchlistRepo *repository.WatchlistRepository
	stockRepo     *repository.StockRepository
	userRepo      *repository.UserRepository
}

// NewWatchlistService creates a new WatchlistService with the provided repository dependencies.
func NewWatchlistService(
	watchlistRepo *repository.WatchlistRepository,
	stockRepo *repository.StockRepository,
	userRepo *repository.UserRepository,
) *WatchlistService {
	return &WatchlistService{
		watchlistRepo: watchlistRepo,
		stockRepo:     stockRepo,
		userRepo:      userRepo,
	}
}

// CreateWatchlist creates a watchlist for an existing user. Unknown stock IDs
// are dropped from the resolved set and logged.
func (s *WatchlistService) CreateWatchlist(req request.SaveWatchlistRequest) (model.WatchlistView, error) {
	exists, err := s.userRepo.ExistsOnID(req.UserID)
	if err != nil {
		return model.WatchlistView{}, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return model.WatchlistView{}, apperrors.ErrUserNotFound
	}

	stockIDs, err := s.resolveStockIDs(req.StockIDs)
	if err != nil {
		return model.WatchlistView{}, err
	}

	watchlist := model.Watchlist{
		Name:   req.Name,
		UserID: req.UserID,
	}

	if err := s.watchlistRepo.SaveWatchlist(&watchlist, stockIDs); err != nil {
		return model.WatchlistView{}, fmt.Errorf("failed to save watchlist: %w", err)
	}

	return model.WatchlistView{
		ID:       watchlist.ID,
		Name:     watchlist.Name,
		StockIDs: stockIDs,
		UserID:   watchlist.UserID,
	}, nil
}

// GetAllWatchlists retrieves every watchlist with its resolved stock IDs.
func (s *WatchlistService) GetAllWatchlists() ([]model.WatchlistView, error) {
	watchlists, err := s.watchlistRepo.GetWatchlists()
	if err != nil {
		return nil, err
	}

	views := make([]model.WatchlistView, len(watchlists))
	for i, watchlist := range watchlists {
		stockIDs, err := s.watchlistRepo.GetStockIDsOnWatchlist(watchlist.ID)
		if err != nil {
			return nil, err
		}
		views[i] = model.WatchlistView{
			ID:       watchlist.ID,
			Name:     watchlist.Name,
			StockIDs: stockIDs,
			UserID:   watchlist.UserID,
		}
	}

	return views, nil
}

// GetWatchlistByID retrieves a single watchlist view. Returns
// ErrWatchlistNotFound when the ID does not exist.
func (s *WatchlistService) GetWatchlistByID(watchlistID int64) (model.WatchlistView, error) {
	watchlist, err := s.watchlistRepo.GetWatchlistOnID(watchlistID)
	if err != nil {
		return model.WatchlistView{}, err
	}

	stockIDs, err := s.watchlistRepo.GetStockIDsOnWatchlist(watchlist.ID)
	if err != nil {
		return model.WatchlistView{}, err
	}

	return model.WatchlistView{
		ID:       watchlist.ID,
		Name:     watchlist.Name,
		StockIDs: stockIDs,
		UserID:   watchlist.UserID,
	}, nil
}

// UpdateWatchlist replaces a watchlist's name and stock set. The owner is
// never changed by an update. Returns ErrWatchlistNotFound when the ID does
// not exist.
func (s *WatchlistService) UpdateWatchlist(watchlistID int64, req request.SaveWatchlistRequest) (model.WatchlistView, error) {
	watchlist, err := s.watchlistRepo.GetWatchlistOnID(watchlistID)
	if err != nil {
		return model.WatchlistView{}, err
	}

	stockIDs, err := s.resolveStockIDs(req.StockIDs)
	if err != nil {
		return model.WatchlistView{}, err
	}

	watchlist.Name = req.Name

	if err := s.watchlistRepo.SaveWatchlist(&watchlist, stockIDs); err != nil {
		return model.WatchlistView{}, fmt.Errorf("failed to save watchlist: %w", err)
	}

	return model.WatchlistView{
		ID:       watchlist.ID,
		Name:     watchlist.Name,
		StockIDs: stockIDs,
		UserID:   watchlist.UserID,
	}, nil
}

// DeleteWatchlist deletes a watchlist by ID. Returns ErrWatchlistNotFound
// when the ID does not exist.
func (s *WatchlistService) DeleteWatchlist(watchlistID int64) error {
	return s.watchlistRepo.DeleteWatchlistOnID(watchlistID)
}

func (s *WatchlistService) resolveStockIDs(requested []int64) ([]int64, error) {
	stocks, missing, err := s.stockRepo.GetStocksOnIDs(requested)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stocks: %w", err)
	}
	if len(missing) > 0 {
		log.Printf("watchlist save dropping unknown stock ids %v", missing)
	}

	stockIDs := make([]int64, len(stocks))
	for i, stock := range stocks {
		stockIDs[i] = stock.ID
	}
	return stockIDs, nil
}
