package request

// SaveWatchlistRequest is the body for POST /watchlists and PUT
// /watchlists/{id}. On update the owner is not changed; UserID is only
// consulted at creation.
type SaveWatchlistRequest struct {
	Name     string  `json:"name"`
	StockIDs []int64 `json:"stockIds"`
	UserID   int64   `json:"userId"`
}
