package model

import "time"

// Transaction type values.
const (
	TransactionBuy  = "BUY"
	TransactionSell = "SELL"
)

// Transaction records a buy or sell of a stock against a portfolio.
// Transactions are immutable once created except for deletion.
type Transaction struct {
	ID              int64
	PortfolioID     int64
	StockID         int64
	Type            string
	Amount          float64
	PricePerUnit    float64
	TransactionDate time.Time
}

// TransactionView is a transaction enriched with the resolved stock symbol.
// The symbol may be empty when the referenced stock has since been deleted;
// the transaction itself remains readable.
type TransactionView struct {
	ID              int64
	PortfolioID     int64
	StockID         int64
	StockSymbol     string
	Type            string
	Amount          float64
	PricePerUnit    float64
	TransactionDate time.Time
}
