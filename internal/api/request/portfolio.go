package request

// SavePortfolioRequest is the body for POST /portfolios. The stock set is
// replaced wholesale; unknown stock IDs are dropped from the resolved set.
type SavePortfolioRequest struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StockIDs    []int64 `json:"stockIds"`
}
