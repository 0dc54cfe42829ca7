package testutil

import (
	"context"
	"strings"

	"github.com/stockfolio/portfolio-tracker-backend/internal/finnhub"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// MockQuoteClient is a mock implementation of finnhub.QuoteClient for testing.
// It serves quotes from a fixed map instead of making network calls.
type MockQuoteClient struct {
	// Quotes maps upper-case symbols to the quote to return.
	Quotes map[string]model.StockQuote
	// Err is returned from FetchQuote for symbols not present in Quotes.
	Err error
	// FetchQuoteCalls and FetchManyCalls track how often each method ran.
	FetchQuoteCalls int
	FetchManyCalls  int
}

// NewMockQuoteClient creates a mock quote client with no configured quotes,
// so every fetch fails with the given error.
func NewMockQuoteClient(err error) *MockQuoteClient {
	return &MockQuoteClient{
		Quotes: map[string]model.StockQuote{},
		Err:    err,
	}
}

// WithQuote registers a quote for the given symbol.
func (m *MockQuoteClient) WithQuote(symbol string, quote model.StockQuote) *MockQuoteClient {
	m.Quotes[strings.ToUpper(symbol)] = quote
	return m
}

// FetchQuote returns the configured quote for the symbol, or the configured
// error when none is registered.
func (m *MockQuoteClient) FetchQuote(_ context.Context, symbol, _ string) (model.StockQuote, error) {
	m.FetchQuoteCalls++
	quote, ok := m.Quotes[strings.ToUpper(symbol)]
	if !ok {
		return model.StockQuote{}, m.Err
	}
	return quote, nil
}

// FetchMany returns the configured quotes for the given symbols, skipping
// unregistered ones, matching the partial-batch behavior of the real client.
func (m *MockQuoteClient) FetchMany(_ context.Context, symbols []string, _ string) []model.StockQuote {
	m.FetchManyCalls++
	quotes := make([]model.StockQuote, 0, len(symbols))
	for _, symbol := range symbols {
		if quote, ok := m.Quotes[strings.ToUpper(symbol)]; ok {
			quotes = append(quotes, quote)
		}
	}
	return quotes
}

var _ finnhub.QuoteClient = (*MockQuoteClient)(nil)

// Quote builds a StockQuote for tests with the synthetic ID the real client
// would assign.
func Quote(symbol string, price, changePercent float64) model.StockQuote {
	return model.StockQuote{
		ID:            finnhub.SyntheticID(symbol),
		Symbol:        symbol,
		CompanyName:   symbol + " Inc",
		CurrentPrice:  price,
		Quantity:      0,
		TotalValue:    0,
		ChangePercent: changePercent,
	}
}
