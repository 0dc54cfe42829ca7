package service

import (
	"fmt"
	"log"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/repository"
)

// PortfolioService handles portfolio-related business logic operations.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	stockRepo     *repository.StockRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	stockRepo *repository.StockRepository,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		stockRepo:     stockRepo,
	}
}

// SavePortfolio creates or updates a portfolio, replacing its stock set
// wholesale with the resolved subset of the requested stock IDs. Unknown IDs
// are dropped from the set and logged. The returned view carries the total
// value recomputed over the resolved stocks.
func (s *PortfolioService) SavePortfolio(req request.SavePortfolioRequest) (model.PortfolioView, error) {
	stocks, missing, err := s.stockRepo.GetStocksOnIDs(req.StockIDs)
	if err != nil {
		return model.PortfolioView{}, fmt.Errorf("failed to resolve stocks: %w", err)
	}
	if len(missing) > 0 {
		log.Printf("portfolio save dropping unknown stock ids %v", missing)
	}

	portfolio := model.Portfolio{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
	}

	stockIDs := make([]int64, len(stocks))
	for i, stock := range stocks {
		stockIDs[i] = stock.ID
	}

	if err := s.portfolioRepo.SavePortfolio(&portfolio, stockIDs); err != nil {
		return model.PortfolioView{}, fmt.Errorf("failed to save portfolio: %w", err)
	}

	return model.PortfolioView{
		ID:          portfolio.ID,
		Name:        portfolio.Name,
		Description: portfolio.Description,
		TotalValue:  sumStockValues(stocks),
		StockIDs:    stockIDs,
	}, nil
}

// GetAllPortfolios retrieves every portfolio with its stock IDs and the total
// value recomputed fresh from the constituent stocks.
func (s *PortfolioService) GetAllPortfolios() ([]model.PortfolioView, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios()
	if err != nil {
		return nil, err
	}

	views := make([]model.PortfolioView, len(portfolios))
	for i, portfolio := range portfolios {
		view, err := s.buildView(portfolio)
		if err != nil {
			return nil, err
		}
		views[i] = view
	}

	return views, nil
}

// GetPortfolioByID retrieves a single portfolio view. Returns
// ErrPortfolioNotFound when the ID does not exist.
func (s *PortfolioService) GetPortfolioByID(portfolioID int64) (model.PortfolioView, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.PortfolioView{}, err
	}
	return s.buildView(portfolio)
}

// DeletePortfolio deletes a portfolio by ID. Returns ErrPortfolioNotFound
// when the ID does not exist, so handlers surface a 404 rather than silently
// succeeding.
func (s *PortfolioService) DeletePortfolio(portfolioID int64) error {
	return s.portfolioRepo.DeletePortfolioOnID(portfolioID)
}

func (s *PortfolioService) buildView(portfolio model.Portfolio) (model.PortfolioView, error) {
	stocks, err := s.portfolioRepo.GetStocksOnPortfolio(portfolio.ID)
	if err != nil {
		return model.PortfolioView{}, err
	}

	stockIDs := make([]int64, len(stocks))
	for i, stock := range stocks {
		stockIDs[i] = stock.ID
	}

	return model.PortfolioView{
		ID:          portfolio.ID,
		Name:        portfolio.Name,
		Description: portfolio.Description,
		TotalValue:  sumStockValues(stocks),
		StockIDs:    stockIDs,
	}, nil
}

func sumStockValues(stocks []model.Stock) float64 {
	total := 0.0
	for _, stock := range stocks {
		total += stock.TotalValue()
	}
	return total
}
