// Package request defines the JSON request bodies accepted by the API layer.
package request

// SaveStockRequest is the body for POST /stocks. A zero ID creates a new
// stock; a non-zero ID upserts that identifier.
type SaveStockRequest struct {
	ID           int64   `json:"id"`
	Symbol       string  `json:"symbol"`
	CompanyName  string  `json:"companyName"`
	CurrentPrice float64 `json:"currentPrice"`
	Quantity     int     `json:"quantity"`
}
