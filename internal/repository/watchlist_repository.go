package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// WatchlistRepository provides data access methods for the watchlist and
// watchlist_stock tables.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new WatchlistRepository with the provided database connection.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// GetWatchlists retrieves all watchlists. Returns an empty slice when none exist.
func (s *WatchlistRepository) GetWatchlists() ([]model.Watchlist, error) {
	query := `
		SELECT id, name, user_id
		FROM watchlist
		ORDER BY id ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist table: %w", err)
	}
	defer rows.Close()

	watchlists := []model.Watchlist{}

	for rows.Next() {
		var w model.Watchlist

		err := rows.Scan(
			&w.ID,
			&w.Name,
			&w.UserID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist table results: %w", err)
		}

		watchlists = append(watchlists, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist table: %w", err)
	}

	return watchlists, nil
}

// GetWatchlistOnID retrieves a single watchlist by its ID.
func (s *WatchlistRepository) GetWatchlistOnID(watchlistID int64) (model.Watchlist, error) {
	query := `
		SELECT id, name, user_id
		FROM watchlist
		WHERE id = ?
	`
	var w model.Watchlist

	err := s.db.QueryRow(query, watchlistID).Scan(
		&w.ID,
		&w.Name,
		&w.UserID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Watchlist{}, apperrors.ErrWatchlistNotFound
	}
	if err != nil {
		return model.Watchlist{}, fmt.Errorf("failed to query watchlist: %w", err)
	}

	return w, nil
}

// SaveWatchlist inserts or updates a watchlist and replaces its stock set
// wholesale, all within a single transaction. The assigned ID is written back.
func (s *WatchlistRepository) SaveWatchlist(w *model.Watchlist, stockIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if w.ID == 0 {
		result, err := tx.Exec(`
			INSERT INTO watchlist (name, user_id) VALUES (?, ?)
		`, w.Name, w.UserID)
		if err != nil {
			return fmt.Errorf("failed to insert watchlist: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted watchlist id: %w", err)
		}
		w.ID = id
	} else {
		_, err := tx.Exec(`
			UPDATE watchlist SET name = ?, user_id = ? WHERE id = ?
		`, w.Name, w.UserID, w.ID)
		if err != nil {
			return fmt.Errorf("failed to update watchlist: %w", err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM watchlist_stock WHERE watchlist_id = ?`, w.ID); err != nil {
		return fmt.Errorf("failed to clear watchlist stocks: %w", err)
	}

	for _, stockID := range stockIDs {
		if _, err := tx.Exec(`
			INSERT INTO watchlist_stock (watchlist_id, stock_id) VALUES (?, ?)
		`, w.ID, stockID); err != nil {
			return fmt.Errorf("failed to insert watchlist stock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit watchlist save: %w", err)
	}

	return nil
}

// GetStockIDsOnWatchlist retrieves the stock IDs belonging to a watchlist.
func (s *WatchlistRepository) GetStockIDsOnWatchlist(watchlistID int64) ([]int64, error) {
	query := `
		SELECT stock_id
		FROM watchlist_stock
		WHERE watchlist_id = ?
		ORDER BY stock_id ASC
	`

	rows, err := s.db.Query(query, watchlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist_stock table: %w", err)
	}
	defer rows.Close()

	stockIDs := []int64{}

	for rows.Next() {
		var stockID int64
		if err := rows.Scan(&stockID); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist_stock table results: %w", err)
		}
		stockIDs = append(stockIDs, stockID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist_stock table: %w", err)
	}

	return stockIDs, nil
}

// DeleteWatchlistOnID deletes a watchlist by ID. Join-table rows cascade.
// Returns ErrWatchlistNotFound when no row matched.
func (s *WatchlistRepository) DeleteWatchlistOnID(watchlistID int64) error {
	result, err := s.db.Exec(`DELETE FROM watchlist WHERE id = ?`, watchlistID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrWatchlistNotFound
	}

	return nil
}
