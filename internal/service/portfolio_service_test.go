package service_test

import (
	"errors"
	"testing"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/testutil"
)

// TestPortfolioService_SavePortfolio tests portfolio creation and updates.
//
// WHY: Saving replaces the stock set wholesale and silently drops unknown
// IDs; both behaviors are load-bearing for the frontend's save-everything
// flow.
func TestPortfolioService_SavePortfolio(t *testing.T) {
	t.Run("creates a portfolio with resolved stocks", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		s1 := testutil.CreateStock(t, db, "AAPL", 100, 2)
		s2 := testutil.CreateStock(t, db, "MSFT", 50, 1)

		view, err := svc.SavePortfolio(request.SavePortfolioRequest{
			Name:        "Growth",
			Description: "Long-term picks",
			StockIDs:    []int64{s1.ID, s2.ID},
		})
		if err != nil {
			t.Fatalf("SavePortfolio() returned unexpected error: %v", err)
		}

		if view.ID == 0 {
			t.Error("Expected assigned ID, got 0")
		}
		if len(view.StockIDs) != 2 {
			t.Errorf("Expected 2 stock IDs, got %d", len(view.StockIDs))
		}
		if view.TotalValue != 250 {
			t.Errorf("TotalValue = %v, want 250", view.TotalValue)
		}
	})

	t.Run("drops unknown stock ids", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		s1 := testutil.CreateStock(t, db, "AAPL", 100, 2)

		view, err := svc.SavePortfolio(request.SavePortfolioRequest{
			Name:     "Sparse",
			StockIDs: []int64{s1.ID, 9999},
		})
		if err != nil {
			t.Fatalf("SavePortfolio() returned unexpected error: %v", err)
		}

		if len(view.StockIDs) != 1 || view.StockIDs[0] != s1.ID {
			t.Errorf("StockIDs = %v, want only %d", view.StockIDs, s1.ID)
		}
	})

	t.Run("update replaces the stock set wholesale", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		s1 := testutil.CreateStock(t, db, "AAPL", 100, 2)
		s2 := testutil.CreateStock(t, db, "MSFT", 50, 1)

		created, err := svc.SavePortfolio(request.SavePortfolioRequest{
			Name:     "Rotating",
			StockIDs: []int64{s1.ID},
		})
		if err != nil {
			t.Fatalf("SavePortfolio() returned unexpected error: %v", err)
		}

		updated, err := svc.SavePortfolio(request.SavePortfolioRequest{
			ID:       created.ID,
			Name:     "Rotating",
			StockIDs: []int64{s2.ID},
		})
		if err != nil {
			t.Fatalf("SavePortfolio() update returned unexpected error: %v", err)
		}

		if len(updated.StockIDs) != 1 || updated.StockIDs[0] != s2.ID {
			t.Errorf("StockIDs = %v, want only %d after replacement", updated.StockIDs, s2.ID)
		}
		if updated.TotalValue != 50 {
			t.Errorf("TotalValue = %v, want 50", updated.TotalValue)
		}
	})
}

// TestPortfolioService_GetPortfolioByID tests single-portfolio reads.
//
// WHY: The total value must be recomputed fresh from the constituent stocks
// on every read, never cached on the portfolio row.
func TestPortfolioService_GetPortfolioByID(t *testing.T) {
	t.Run("recomputes total value from current stock data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)
		stockSvc := testutil.NewTestStockService(t, db, testutil.NewMockQuoteClient(nil))

		s1 := testutil.CreateStock(t, db, "AAPL", 100, 2)
		s2 := testutil.CreateStock(t, db, "MSFT", 50, 1)
		portfolio := testutil.NewPortfolio().WithStocks(s1.ID, s2.ID).Build(t, db)

		view, err := svc.GetPortfolioByID(portfolio.ID)
		if err != nil {
			t.Fatalf("GetPortfolioByID() returned unexpected error: %v", err)
		}
		if view.TotalValue != 250 {
			t.Errorf("TotalValue = %v, want 250", view.TotalValue)
		}

		// Price change shows up on the next read.
		if _, err := stockSvc.SaveStock(request.SaveStockRequest{
			ID: s1.ID, Symbol: "AAPL", CurrentPrice: 200, Quantity: 2,
		}); err != nil {
			t.Fatalf("SaveStock() returned unexpected error: %v", err)
		}

		view, err = svc.GetPortfolioByID(portfolio.ID)
		if err != nil {
			t.Fatalf("GetPortfolioByID() returned unexpected error: %v", err)
		}
		if view.TotalValue != 450 {
			t.Errorf("TotalValue = %v, want recomputed 450", view.TotalValue)
		}
	})

	t.Run("missing portfolio reports not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		if _, err := svc.GetPortfolioByID(42); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}

// TestPortfolioService_DeletePortfolio tests deletion semantics.
func TestPortfolioService_DeletePortfolio(t *testing.T) {
	t.Run("deletes the portfolio and its join rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		s1 := testutil.CreateStock(t, db, "AAPL", 100, 2)
		portfolio := testutil.NewPortfolio().WithStocks(s1.ID).Build(t, db)

		if err := svc.DeletePortfolio(portfolio.ID); err != nil {
			t.Fatalf("DeletePortfolio() returned unexpected error: %v", err)
		}

		var joinRows int
		if err := db.QueryRow(
			"SELECT COUNT(*) FROM portfolio_stock WHERE portfolio_id = ?", portfolio.ID,
		).Scan(&joinRows); err != nil {
			t.Fatalf("Failed to count join rows: %v", err)
		}
		if joinRows != 0 {
			t.Errorf("Expected cascade to remove join rows, found %d", joinRows)
		}

		// The stock itself survives.
		var stockRows int
		if err := db.QueryRow("SELECT COUNT(*) FROM stock").Scan(&stockRows); err != nil {
			t.Fatalf("Failed to count stocks: %v", err)
		}
		if stockRows != 1 {
			t.Errorf("Expected stock to survive portfolio deletion, found %d rows", stockRows)
		}
	})

	t.Run("missing portfolio reports not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		if err := svc.DeletePortfolio(42); !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}

// TestPortfolioService_GetAllPortfolios tests the listing.
func TestPortfolioService_GetAllPortfolios(t *testing.T) {
	t.Run("returns empty slice when no portfolios exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolios, err := svc.GetAllPortfolios()
		if err != nil {
			t.Fatalf("GetAllPortfolios() returned unexpected error: %v", err)
		}
		if len(portfolios) != 0 {
			t.Errorf("Expected empty slice, got %d portfolios", len(portfolios))
		}
	})

	t.Run("returns every portfolio with its stock ids", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		s1 := testutil.CreateStock(t, db, "AAPL", 100, 2)
		testutil.NewPortfolio().WithName("One").WithStocks(s1.ID).Build(t, db)
		testutil.NewPortfolio().WithName("Two").Build(t, db)

		portfolios, err := svc.GetAllPortfolios()
		if err != nil {
			t.Fatalf("GetAllPortfolios() returned unexpected error: %v", err)
		}
		if len(portfolios) != 2 {
			t.Fatalf("Expected 2 portfolios, got %d", len(portfolios))
		}
	})
}
