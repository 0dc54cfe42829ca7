package model

// Portfolio groups stocks under a name. Stock membership lives in the
// portfolio_stock join table and is replaced wholesale on save.
type Portfolio struct {
	ID          int64
	Name        string
	Description string
}

// PortfolioView is a portfolio with its resolved stock IDs and the total
// value recomputed from the constituent stocks on every read.
type PortfolioView struct {
	ID          int64
	Name        string
	Description string
	TotalValue  float64
	StockIDs    []int64
}
