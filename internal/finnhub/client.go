// Package finnhub provides a sequential, rate-limited client for the Finnhub
// stock quote API. Provider prices arrive in USD and are converted to the
// locally displayed currency with a configured exchange rate.
package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// DefaultBaseURL is the production Finnhub API endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// DefaultRequestInterval keeps the client under Finnhub's free-tier limit of
// 60 requests per minute with a little headroom.
const DefaultRequestInterval = 1100 * time.Millisecond

// ErrNoAPIKey indicates that neither a per-request key nor a configured
// default key is available; no network call is made in that case.
var ErrNoAPIKey = errors.New("no finnhub API key configured")

// QuoteClient is the interface consumed by services, allowing a mock
// implementation in tests.
type QuoteClient interface {
	// FetchQuote fetches a live quote for one symbol. The apiKey argument
	// overrides the configured default when non-empty.
	FetchQuote(ctx context.Context, symbol, apiKey string) (model.StockQuote, error)
	// FetchMany fetches quotes for the given symbols strictly sequentially,
	// skipping symbols that fail. It never returns an error; cancellation
	// truncates the batch to whatever has been collected.
	FetchMany(ctx context.Context, symbols []string, apiKey string) []model.StockQuote
}

// Config holds the settings for a Client. BaseURL and RequestInterval fall
// back to the production defaults when zero-valued.
type Config struct {
	APIKey          string
	ExchangeRate    float64
	BaseURL         string
	RequestInterval time.Duration
}

// Client fetches quotes from the Finnhub HTTP API. All requests share one
// rate limiter, so quote calls are spaced out regardless of which method
// issues them.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	defaultAPIKey string
	exchangeRate  float64
	limiter       *rate.Limiter
}

// NewClient creates a Finnhub client from the given configuration.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	interval := cfg.RequestInterval
	if interval <= 0 {
		interval = DefaultRequestInterval
	}
	return &Client{
		httpClient:    &http.Client{},
		baseURL:       baseURL,
		defaultAPIKey: cfg.APIKey,
		exchangeRate:  cfg.ExchangeRate,
		limiter:       rate.NewLimiter(rate.Every(interval), 1),
	}
}

// resolveKey picks the API key to use: the explicit argument wins, then the
// configured default, then none.
func (c *Client) resolveKey(apiKey string) string {
	if apiKey != "" {
		return apiKey
	}
	return c.defaultAPIKey
}

// FetchQuote fetches the current quote and company name for one symbol and
// converts the price to local currency.
//
// Percent change uses the provider-supplied value when present; otherwise it
// is derived from the previous close, or 0 when no positive previous close is
// available. The quote carries a synthetic symbol-derived ID so callers can
// merge it with stored rows before a real identifier exists.
func (c *Client) FetchQuote(ctx context.Context, symbol, apiKey string) (model.StockQuote, error) {
	key := c.resolveKey(apiKey)
	if key == "" {
		return model.StockQuote{}, ErrNoAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return model.StockQuote{}, err
	}

	var quote quoteResponse
	quoteURL := fmt.Sprintf("%s/quote?symbol=%s&token=%s", c.baseURL, url.QueryEscape(symbol), url.QueryEscape(key))
	if err := c.getJSON(ctx, quoteURL, &quote); err != nil {
		return model.StockQuote{}, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	price := float64(quote.Current)
	if price <= 0 {
		return model.StockQuote{}, fmt.Errorf("no usable price returned for %s", symbol)
	}

	changePercent := 0.0
	switch {
	case quote.ChangePercent != nil:
		changePercent = float64(*quote.ChangePercent)
	case quote.PreviousClose > 0:
		previousClose := float64(quote.PreviousClose)
		changePercent = (price - previousClose) / previousClose * 100
	}

	// Profile lookup failures are non-fatal; the symbol stands in for the name.
	companyName := c.fetchCompanyName(ctx, symbol, key)
	if companyName == "" {
		companyName = symbol
	}

	return model.StockQuote{
		ID:            SyntheticID(symbol),
		Symbol:        symbol,
		CompanyName:   companyName,
		CurrentPrice:  price * c.exchangeRate,
		Quantity:      0,
		TotalValue:    0,
		ChangePercent: changePercent,
	}, nil
}

// FetchMany fetches quotes for the given symbols one at a time, honoring the
// shared rate limiter between calls. Per-symbol failures are logged and
// skipped; a cancelled context stops the batch and returns what has been
// collected so far.
func (c *Client) FetchMany(ctx context.Context, symbols []string, apiKey string) []model.StockQuote {
	key := c.resolveKey(apiKey)
	if key == "" {
		log.Println("no API key available for batch quote fetch")
		return nil
	}

	quotes := make([]model.StockQuote, 0, len(symbols))
	for _, symbol := range symbols {
		quote, err := c.FetchQuote(ctx, symbol, key)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return quotes
			}
			log.Printf("skipping quote for %s: %v", symbol, err)
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes
}

// fetchCompanyName queries the profile endpoint for a display name.
// Failures fall back to an empty string.
func (c *Client) fetchCompanyName(ctx context.Context, symbol, key string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		return ""
	}

	var profile profileResponse
	profileURL := fmt.Sprintf("%s/stock/profile2?symbol=%s&token=%s", c.baseURL, url.QueryEscape(symbol), url.QueryEscape(key))
	if err := c.getJSON(ctx, profileURL, &profile); err != nil {
		return ""
	}
	return profile.Name
}

// getJSON executes a GET request and decodes the JSON response body.
func (c *Client) getJSON(ctx context.Context, requestURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("empty response body")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.Unmarshal(data, target)
}

// SyntheticID derives a stable positive identifier from a symbol, used for
// quotes that are not yet tied to a stored stock row.
func SyntheticID(symbol string) int64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return int64(h.Sum32())
}

var _ QuoteClient = (*Client)(nil)
