package model

// Watchlist is a named set of stocks owned by a user. Stock membership lives
// in the watchlist_stock join table.
type Watchlist struct {
	ID     int64
	Name   string
	UserID int64
}

// WatchlistView is a watchlist with its resolved stock IDs.
type WatchlistView struct {
	ID       int64
	Name     string
	StockIDs []int64
	UserID   int64
}
