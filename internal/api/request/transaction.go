package request

// CreateTransactionRequest is the body for POST /transactions. StockID and
// StockSymbol are alternatives: the ID is tried first, then the symbol, and
// an unknown symbol creates a shell stock on the fly. TransactionDate is
// optional RFC3339 or YYYY-MM-DD; it defaults to the current time.
type CreateTransactionRequest struct {
	PortfolioID     int64   `json:"portfolioId"`
	StockID         int64   `json:"stockId"`
	StockSymbol     string  `json:"stockSymbol"`
	TransactionType string  `json:"transactionType"`
	Amount          float64 `json:"amount"`
	PricePerUnit    float64 `json:"pricePerUnit"`
	TransactionDate string  `json:"transactionDate"`
}
