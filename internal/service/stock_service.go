package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/finnhub"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/repository"
)

// PopularSymbols is the fixed list of blue-chip tickers proactively refreshed
// on a stock-list read. Kept short to stay within the provider's rate limit.
var PopularSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META", "NVDA", "JPM", "V", "JNJ",
	"WMT", "PG", "MA", "UNH", "HD",
}

// StockService handles stock-related business logic operations, including the
// live-enriched read view backed by the quote client.
type StockService struct {
	stockRepo   *repository.StockRepository
	quoteClient finnhub.QuoteClient
	group       singleflight.Group
}

// NewStockService creates a new StockService with the provided dependencies.
func NewStockService(
	stockRepo *repository.StockRepository,
	quoteClient finnhub.QuoteClient,
) *StockService {
	return &StockService{
		stockRepo:   stockRepo,
		quoteClient: quoteClient,
	}
}

// SaveStock upserts a stock by identifier and returns the persisted entity
// with its assigned ID.
func (s *StockService) SaveStock(req request.SaveStockRequest) (model.Stock, error) {
	stock := model.Stock{
		ID:           req.ID,
		Symbol:       req.Symbol,
		CompanyName:  req.CompanyName,
		CurrentPrice: req.CurrentPrice,
		Quantity:     req.Quantity,
	}

	if err := s.stockRepo.SaveStock(&stock); err != nil {
		return model.Stock{}, fmt.Errorf("failed to save stock: %w", err)
	}

	return stock, nil
}

// GetAllStocks retrieves the raw stored entity list.
func (s *StockService) GetAllStocks() ([]model.Stock, error) {
	return s.stockRepo.GetStocks()
}

// GetAllStocksWithLivePrices returns the merged live view of the popular
// symbols and every stored stock:
//
//  1. The popular symbols are fetched as a batch. When that yields nothing
//     (no key, provider down) the stored rows are returned with 0% change so
//     the system stays usable offline.
//  2. Each stored stock already present among the live quotes gets its stored
//     ID and quantity spliced in and its total value recomputed.
//  3. Stored stocks missing from the live set are fetched individually, with
//     the stored price as fallback.
//
// Concurrent calls with the same API key are collapsed into one upstream
// batch, since a full fetch takes multiple seconds of rate-limited calls.
func (s *StockService) GetAllStocksWithLivePrices(ctx context.Context, apiKey string) ([]model.StockQuote, error) {
	result, err, _ := s.group.Do("live-prices:"+apiKey, func() (any, error) {
		return s.fetchAllWithLivePrices(ctx, apiKey)
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.StockQuote), nil
}

func (s *StockService) fetchAllWithLivePrices(ctx context.Context, apiKey string) ([]model.StockQuote, error) {
	liveQuotes := s.quoteClient.FetchMany(ctx, PopularSymbols, apiKey)

	dbStocks, err := s.stockRepo.GetStocks()
	if err != nil {
		return nil, fmt.Errorf("failed to load stored stocks: %w", err)
	}

	if len(liveQuotes) == 0 {
		quotes := make([]model.StockQuote, len(dbStocks))
		for i, stock := range dbStocks {
			quotes[i] = model.QuoteFromStock(stock)
		}
		return quotes, nil
	}

	for _, stock := range dbStocks {
		if i := findQuoteBySymbol(liveQuotes, stock.Symbol); i >= 0 {
			liveQuotes[i].ID = stock.ID
			liveQuotes[i].Quantity = stock.Quantity
			liveQuotes[i].TotalValue = liveQuotes[i].CurrentPrice * float64(stock.Quantity)
			continue
		}

		quote, err := s.quoteClient.FetchQuote(ctx, stock.Symbol, apiKey)
		if err != nil {
			// Provider failure for this symbol: fall back to the stored price.
			liveQuotes = append(liveQuotes, model.QuoteFromStock(stock))
			continue
		}
		quote.ID = stock.ID
		quote.Quantity = stock.Quantity
		quote.TotalValue = quote.CurrentPrice * float64(stock.Quantity)
		liveQuotes = append(liveQuotes, quote)
	}

	return liveQuotes, nil
}

func findQuoteBySymbol(quotes []model.StockQuote, symbol string) int {
	for i, q := range quotes {
		if strings.EqualFold(q.Symbol, symbol) {
			return i
		}
	}
	return -1
}

// GetStockByID retrieves a single stock by ID.
func (s *StockService) GetStockByID(stockID int64) (model.Stock, error) {
	return s.stockRepo.GetStockOnID(stockID)
}

// GetStockBySymbol retrieves a single stock by symbol (case-insensitive).
func (s *StockService) GetStockBySymbol(symbol string) (model.Stock, error) {
	return s.stockRepo.GetStockOnSymbol(symbol)
}

// DeleteStockByID deletes a stock by ID. Returns ErrStockNotFound when the
// ID does not exist.
func (s *StockService) DeleteStockByID(stockID int64) error {
	return s.stockRepo.DeleteStockOnID(stockID)
}

// DeleteStockBySymbol deletes a stock by symbol. Deleting an unknown symbol
// is a no-op, not an error.
func (s *StockService) DeleteStockBySymbol(symbol string) error {
	stock, err := s.stockRepo.GetStockOnSymbol(symbol)
	if errors.Is(err, apperrors.ErrStockNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.stockRepo.DeleteStockOnID(stock.ID)
}

// GetTotalValue returns the sum of price times quantity over every stored
// stock, independent of portfolio groupings.
func (s *StockService) GetTotalValue() (float64, error) {
	return s.stockRepo.TotalValue()
}

// RefreshStoredPrices updates the stored price of every stock from the quote
// provider. Used by the optional scheduler; per-symbol failures are logged
// and skipped.
func (s *StockService) RefreshStoredPrices(ctx context.Context) error {
	stocks, err := s.stockRepo.GetStocks()
	if err != nil {
		return fmt.Errorf("failed to load stored stocks: %w", err)
	}

	for _, stock := range stocks {
		quote, err := s.quoteClient.FetchQuote(ctx, stock.Symbol, "")
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			log.Printf("price refresh skipping %s: %v", stock.Symbol, err)
			continue
		}
		if err := s.stockRepo.UpdateStockPrice(stock.ID, quote.CurrentPrice); err != nil {
			log.Printf("price refresh failed to store %s: %v", stock.Symbol, err)
		}
	}

	return nil
}
