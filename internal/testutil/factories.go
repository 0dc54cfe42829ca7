package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// MakeName generates a unique name with the given prefix, so tests can create
// many entities without colliding on unique columns.
func MakeName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// MakeSymbol generates a unique ticker-like symbol that fits the column width.
func MakeSymbol() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 6)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))] //nolint:gosec // test data
	}
	return string(b)
}

// StockBuilder provides a fluent interface for creating test stocks.
//
// Example usage:
//
//	stock := testutil.NewStock().
//	    WithSymbol("AAPL").
//	    WithPrice(150).
//	    WithQuantity(10).
//	    Build(t, db)
type StockBuilder struct {
	Symbol       string
	CompanyName  string
	CurrentPrice float64
	Quantity     int
}

// NewStock creates a StockBuilder with sensible defaults.
func NewStock() *StockBuilder {
	return &StockBuilder{
		Symbol:       MakeSymbol(),
		CompanyName:  "Test Company",
		CurrentPrice: 100,
		Quantity:     1,
	}
}

// WithSymbol sets a custom symbol.
func (b *StockBuilder) WithSymbol(symbol string) *StockBuilder {
	b.Symbol = symbol
	return b
}

// WithCompanyName sets a custom company name.
func (b *StockBuilder) WithCompanyName(name string) *StockBuilder {
	b.CompanyName = name
	return b
}

// WithPrice sets a custom current price.
func (b *StockBuilder) WithPrice(price float64) *StockBuilder {
	b.CurrentPrice = price
	return b
}

// WithQuantity sets a custom quantity.
func (b *StockBuilder) WithQuantity(quantity int) *StockBuilder {
	b.Quantity = quantity
	return b
}

// Build creates the stock in the database and returns it.
func (b *StockBuilder) Build(t *testing.T, db *sql.DB) model.Stock {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO stock (symbol, company_name, current_price, quantity) VALUES (?, ?, ?, ?)",
		b.Symbol, b.CompanyName, b.CurrentPrice, b.Quantity,
	)
	if err != nil {
		t.Fatalf("Failed to create test stock: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test stock ID: %v", err)
	}

	return model.Stock{
		ID:           id,
		Symbol:       b.Symbol,
		CompanyName:  b.CompanyName,
		CurrentPrice: b.CurrentPrice,
		Quantity:     b.Quantity,
	}
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
type PortfolioBuilder struct {
	Name        string
	Description string
	StockIDs    []int64
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		Name:        MakeName("Test Portfolio"),
		Description: "Test description",
	}
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// WithStocks sets the stock IDs linked through the join table.
func (b *PortfolioBuilder) WithStocks(stockIDs ...int64) *PortfolioBuilder {
	b.StockIDs = stockIDs
	return b
}

// Build creates the portfolio and its join rows in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO portfolio (name, description) VALUES (?, ?)",
		b.Name, b.Description,
	)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test portfolio ID: %v", err)
	}

	for _, stockID := range b.StockIDs {
		if _, err := db.Exec(
			"INSERT INTO portfolio_stock (portfolio_id, stock_id) VALUES (?, ?)",
			id, stockID,
		); err != nil {
			t.Fatalf("Failed to link test stock %d: %v", stockID, err)
		}
	}

	return model.Portfolio{
		ID:          id,
		Name:        b.Name,
		Description: b.Description,
	}
}

// UserBuilder provides a fluent interface for creating test users.
type UserBuilder struct {
	Username string
	Password string
	Email    string
	APIKey   string
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		Username: MakeName("testuser"),
		Password: "secret",
		Email:    "test@example.com",
	}
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithAPIKey sets a stored API key value.
func (b *UserBuilder) WithAPIKey(apiKey string) *UserBuilder {
	b.APIKey = apiKey
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO user (username, password, email, api_key) VALUES (?, ?, ?, ?)",
		b.Username, b.Password, b.Email, b.APIKey,
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test user ID: %v", err)
	}

	return model.User{
		ID:       id,
		Username: b.Username,
		Password: b.Password,
		Email:    b.Email,
		APIKey:   b.APIKey,
	}
}

// WatchlistBuilder provides a fluent interface for creating test watchlists.
type WatchlistBuilder struct {
	Name     string
	UserID   int64
	StockIDs []int64
}

// NewWatchlist creates a WatchlistBuilder owned by the given user.
func NewWatchlist(userID int64) *WatchlistBuilder {
	return &WatchlistBuilder{
		Name:   MakeName("Test Watchlist"),
		UserID: userID,
	}
}

// WithName sets a custom name.
func (b *WatchlistBuilder) WithName(name string) *WatchlistBuilder {
	b.Name = name
	return b
}

// WithStocks sets the stock IDs linked through the join table.
func (b *WatchlistBuilder) WithStocks(stockIDs ...int64) *WatchlistBuilder {
	b.StockIDs = stockIDs
	return b
}

// Build creates the watchlist and its join rows in the database and returns it.
func (b *WatchlistBuilder) Build(t *testing.T, db *sql.DB) model.Watchlist {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO watchlist (name, user_id) VALUES (?, ?)",
		b.Name, b.UserID,
	)
	if err != nil {
		t.Fatalf("Failed to create test watchlist: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test watchlist ID: %v", err)
	}

	for _, stockID := range b.StockIDs {
		if _, err := db.Exec(
			"INSERT INTO watchlist_stock (watchlist_id, stock_id) VALUES (?, ?)",
			id, stockID,
		); err != nil {
			t.Fatalf("Failed to link test stock %d: %v", stockID, err)
		}
	}

	return model.Watchlist{
		ID:     id,
		Name:   b.Name,
		UserID: b.UserID,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
type TransactionBuilder struct {
	PortfolioID     int64
	StockID         int64
	Type            string
	Amount          float64
	PricePerUnit    float64
	TransactionDate time.Time
}

// NewTransaction creates a TransactionBuilder referencing the given portfolio
// and stock.
func NewTransaction(portfolioID, stockID int64) *TransactionBuilder {
	return &TransactionBuilder{
		PortfolioID:     portfolioID,
		StockID:         stockID,
		Type:            model.TransactionBuy,
		Amount:          1,
		PricePerUnit:    100,
		TransactionDate: time.Now().UTC().Truncate(time.Second),
	}
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(transactionType string) *TransactionBuilder {
	b.Type = transactionType
	return b
}

// WithAmount sets the transacted amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithPricePerUnit sets the price per unit.
func (b *TransactionBuilder) WithPricePerUnit(price float64) *TransactionBuilder {
	b.PricePerUnit = price
	return b
}

// WithDate sets the transaction timestamp.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.TransactionDate = date
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	result, err := db.Exec(
		`INSERT INTO "transaction" (portfolio_id, stock_id, type, amount, price_per_unit, transaction_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.PortfolioID, b.StockID, b.Type, b.Amount, b.PricePerUnit,
		b.TransactionDate.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test transaction ID: %v", err)
	}

	return model.Transaction{
		ID:              id,
		PortfolioID:     b.PortfolioID,
		StockID:         b.StockID,
		Type:            b.Type,
		Amount:          b.Amount,
		PricePerUnit:    b.PricePerUnit,
		TransactionDate: b.TransactionDate,
	}
}

// Convenience functions

// CreateStock creates a stock with the given symbol, price, and quantity.
func CreateStock(t *testing.T, db *sql.DB, symbol string, price float64, quantity int) model.Stock {
	t.Helper()
	return NewStock().WithSymbol(symbol).WithPrice(price).WithQuantity(quantity).Build(t, db)
}

// CreatePortfolio creates a portfolio with the given name and default values.
func CreatePortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Build(t, db)
}

// CreateUser creates a user with a unique username and default values.
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}
