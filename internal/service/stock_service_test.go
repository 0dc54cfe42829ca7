package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/finnhub"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
	"github.com/stockfolio/portfolio-tracker-backend/internal/testutil"
)

// TestStockService_SaveStock tests stock upserts.
func TestStockService_SaveStock(t *testing.T) {
	t.Run("creates a stock and assigns an id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockQuoteClient(nil))

		stock, err := svc.SaveStock(request.SaveStockRequest{
			Symbol:       "AAPL",
			CompanyName:  "Apple Inc",
			CurrentPrice: 150,
			Quantity:     3,
		})
		if err != nil {
			t.Fatalf("SaveStock() returned unexpected error: %v", err)
		}

		if stock.ID == 0 {
			t.Error("Expected assigned ID, got 0")
		}
		if stock.TotalValue() != 450 {
			t.Errorf("TotalValue() = %v, want 450", stock.TotalValue())
		}
	})

	t.Run("updates an existing stock by id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockQuoteClient(nil))
		existing := testutil.CreateStock(t, db, "MSFT", 100, 1)

		updated, err := svc.SaveStock(request.SaveStockRequest{
			ID:           existing.ID,
			Symbol:       "MSFT",
			CompanyName:  "Microsoft",
			CurrentPrice: 200,
			Quantity:     2,
		})
		if err != nil {
			t.Fatalf("SaveStock() returned unexpected error: %v", err)
		}

		if updated.ID != existing.ID {
			t.Errorf("ID = %d, want %d", updated.ID, existing.ID)
		}

		stored, err := svc.GetStockByID(existing.ID)
		if err != nil {
			t.Fatalf("GetStockByID() returned unexpected error: %v", err)
		}
		if stored.CurrentPrice != 200 || stored.Quantity != 2 {
			t.Errorf("Stored stock = %+v, want price 200 quantity 2", stored)
		}
	})
}

// TestStockService_GetAllStocksWithLivePrices tests the enrichment merge.
//
// WHY: This is the main read path of the whole service. It has to merge live
// quotes with stored holdings, survive a dead provider, and keep serving
// stored data with no API key at all.
func TestStockService_GetAllStocksWithLivePrices(t *testing.T) {
	t.Run("falls back to stored rows when the provider yields nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockQuoteClient(finnhub.ErrNoAPIKey)
		svc := testutil.NewTestStockService(t, db, mock)

		s1 := testutil.CreateStock(t, db, "AAPL", 150, 2)
		s2 := testutil.CreateStock(t, db, "ZZZT", 10, 5)

		quotes, err := svc.GetAllStocksWithLivePrices(context.Background(), "")
		if err != nil {
			t.Fatalf("GetAllStocksWithLivePrices() returned unexpected error: %v", err)
		}

		if len(quotes) != 2 {
			t.Fatalf("Expected 2 quotes, got %d", len(quotes))
		}
		for _, q := range quotes {
			if q.ChangePercent != 0 {
				t.Errorf("ChangePercent = %v for %s, want 0 in fallback mode", q.ChangePercent, q.Symbol)
			}
		}
		if quotes[0].ID != s1.ID || quotes[0].TotalValue != 300 {
			t.Errorf("First quote = %+v, want id %d total 300", quotes[0], s1.ID)
		}
		if quotes[1].ID != s2.ID || quotes[1].TotalValue != 50 {
			t.Errorf("Second quote = %+v, want id %d total 50", quotes[1], s2.ID)
		}
	})

	t.Run("splices stored id and quantity into live quotes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockQuoteClient(errors.New("provider down"))
		for _, symbol := range service.PopularSymbols {
			mock.WithQuote(symbol, testutil.Quote(symbol, 100, 1.5))
		}
		svc := testutil.NewTestStockService(t, db, mock)

		stored := testutil.CreateStock(t, db, "AAPL", 90, 4)

		quotes, err := svc.GetAllStocksWithLivePrices(context.Background(), "key")
		if err != nil {
			t.Fatalf("GetAllStocksWithLivePrices() returned unexpected error: %v", err)
		}

		var apple *model.StockQuote
		for i := range quotes {
			if quotes[i].Symbol == "AAPL" {
				apple = &quotes[i]
			}
		}
		if apple == nil {
			t.Fatal("AAPL missing from merged quotes")
		}
		if apple.ID != stored.ID {
			t.Errorf("AAPL ID = %d, want stored id %d", apple.ID, stored.ID)
		}
		if apple.Quantity != 4 {
			t.Errorf("AAPL Quantity = %d, want 4", apple.Quantity)
		}
		// Live price wins over the stored price for the total.
		if apple.TotalValue != 400 {
			t.Errorf("AAPL TotalValue = %v, want 400", apple.TotalValue)
		}
	})

	t.Run("popular symbols without stored rows keep quantity zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockQuoteClient(errors.New("provider down"))
		mock.WithQuote("AAPL", testutil.Quote("AAPL", 100, 1.5))
		svc := testutil.NewTestStockService(t, db, mock)

		quotes, err := svc.GetAllStocksWithLivePrices(context.Background(), "key")
		if err != nil {
			t.Fatalf("GetAllStocksWithLivePrices() returned unexpected error: %v", err)
		}

		if len(quotes) != 1 {
			t.Fatalf("Expected 1 quote, got %d", len(quotes))
		}
		if quotes[0].Quantity != 0 || quotes[0].TotalValue != 0 {
			t.Errorf("Quote = %+v, want quantity 0 and total 0", quotes[0])
		}
		if quotes[0].ID != finnhub.SyntheticID("AAPL") {
			t.Errorf("ID = %d, want synthetic id", quotes[0].ID)
		}
	})

	t.Run("stored stock outside the live set gets an individual fetch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockQuoteClient(errors.New("provider down"))
		mock.WithQuote("AAPL", testutil.Quote("AAPL", 100, 1.5))
		mock.WithQuote("OBSCURE", testutil.Quote("OBSCURE", 7, -0.2))
		svc := testutil.NewTestStockService(t, db, mock)

		stored := testutil.CreateStock(t, db, "OBSCURE", 5, 10)

		quotes, err := svc.GetAllStocksWithLivePrices(context.Background(), "key")
		if err != nil {
			t.Fatalf("GetAllStocksWithLivePrices() returned unexpected error: %v", err)
		}

		var obscure *model.StockQuote
		for i := range quotes {
			if quotes[i].Symbol == "OBSCURE" {
				obscure = &quotes[i]
			}
		}
		if obscure == nil {
			t.Fatal("OBSCURE missing from merged quotes")
		}
		if obscure.ID != stored.ID || obscure.CurrentPrice != 7 || obscure.TotalValue != 70 {
			t.Errorf("OBSCURE quote = %+v, want live price 7 with stored id %d", obscure, stored.ID)
		}
	})

	t.Run("individual fetch failure falls back to the stored price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockQuoteClient(errors.New("provider down"))
		mock.WithQuote("AAPL", testutil.Quote("AAPL", 100, 1.5))
		svc := testutil.NewTestStockService(t, db, mock)

		stored := testutil.CreateStock(t, db, "OBSCURE", 5, 10)

		quotes, err := svc.GetAllStocksWithLivePrices(context.Background(), "key")
		if err != nil {
			t.Fatalf("GetAllStocksWithLivePrices() returned unexpected error: %v", err)
		}

		var obscure *model.StockQuote
		for i := range quotes {
			if quotes[i].Symbol == "OBSCURE" {
				obscure = &quotes[i]
			}
		}
		if obscure == nil {
			t.Fatal("OBSCURE missing from merged quotes")
		}
		if obscure.CurrentPrice != 5 || obscure.ChangePercent != 0 || obscure.TotalValue != 50 {
			t.Errorf("OBSCURE quote = %+v, want stored price 5 with 0%% change", obscure)
		}
		_ = stored
	})
}

// TestStockService_DeleteStockBySymbol tests symbol-based deletion semantics.
//
// WHY: Deleting an unknown symbol must be a silent no-op, while deleting a
// known one removes exactly that row.
func TestStockService_DeleteStockBySymbol(t *testing.T) {
	t.Run("unknown symbol is a no-op", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockQuoteClient(nil))
		testutil.CreateStock(t, db, "AAPL", 100, 1)

		if err := svc.DeleteStockBySymbol("NOPE"); err != nil {
			t.Fatalf("DeleteStockBySymbol() returned unexpected error: %v", err)
		}

		stocks, err := svc.GetAllStocks()
		if err != nil {
			t.Fatalf("GetAllStocks() returned unexpected error: %v", err)
		}
		if len(stocks) != 1 {
			t.Errorf("Expected store unchanged with 1 stock, got %d", len(stocks))
		}
	})

	t.Run("known symbol is removed case-insensitively", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockQuoteClient(nil))
		testutil.CreateStock(t, db, "AAPL", 100, 1)

		if err := svc.DeleteStockBySymbol("aapl"); err != nil {
			t.Fatalf("DeleteStockBySymbol() returned unexpected error: %v", err)
		}

		if _, err := svc.GetStockBySymbol("AAPL"); !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("Expected ErrStockNotFound after delete, got %v", err)
		}
	})
}

// TestStockService_DeleteStockByID tests id-based deletion semantics.
func TestStockService_DeleteStockByID(t *testing.T) {
	t.Run("missing id reports not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockQuoteClient(nil))

		if err := svc.DeleteStockByID(999); !errors.Is(err, apperrors.ErrStockNotFound) {
			t.Errorf("Expected ErrStockNotFound, got %v", err)
		}
	})
}

// TestStockService_GetTotalValue tests the global aggregate.
func TestStockService_GetTotalValue(t *testing.T) {
	t.Run("sums price times quantity over all stocks", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockQuoteClient(nil))

		testutil.CreateStock(t, db, "AAPL", 100, 2)
		testutil.CreateStock(t, db, "MSFT", 50, 1)

		total, err := svc.GetTotalValue()
		if err != nil {
			t.Fatalf("GetTotalValue() returned unexpected error: %v", err)
		}
		if total != 250 {
			t.Errorf("GetTotalValue() = %v, want 250", total)
		}
	})

	t.Run("empty store totals zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestStockService(t, db, testutil.NewMockQuoteClient(nil))

		total, err := svc.GetTotalValue()
		if err != nil {
			t.Fatalf("GetTotalValue() returned unexpected error: %v", err)
		}
		if total != 0 {
			t.Errorf("GetTotalValue() = %v, want 0", total)
		}
	})
}

// TestStockService_RefreshStoredPrices tests the scheduler-driven refresh.
func TestStockService_RefreshStoredPrices(t *testing.T) {
	t.Run("updates prices and skips failing symbols", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockQuoteClient(errors.New("provider down"))
		mock.WithQuote("AAPL", testutil.Quote("AAPL", 175, 0.5))
		svc := testutil.NewTestStockService(t, db, mock)

		apple := testutil.CreateStock(t, db, "AAPL", 150, 2)
		broken := testutil.CreateStock(t, db, "BROKEN", 10, 1)

		if err := svc.RefreshStoredPrices(context.Background()); err != nil {
			t.Fatalf("RefreshStoredPrices() returned unexpected error: %v", err)
		}

		refreshed, err := svc.GetStockByID(apple.ID)
		if err != nil {
			t.Fatalf("GetStockByID() returned unexpected error: %v", err)
		}
		if refreshed.CurrentPrice != 175 {
			t.Errorf("AAPL price = %v, want refreshed 175", refreshed.CurrentPrice)
		}

		untouched, err := svc.GetStockByID(broken.ID)
		if err != nil {
			t.Fatalf("GetStockByID() returned unexpected error: %v", err)
		}
		if untouched.CurrentPrice != 10 {
			t.Errorf("BROKEN price = %v, want unchanged 10", untouched.CurrentPrice)
		}
	})
}
