package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// StockRepository provides data access methods for the stock table.
type StockRepository struct {
	db *sql.DB
}

// NewStockRepository creates a new StockRepository with the provided database connection.
func NewStockRepository(db *sql.DB) *StockRepository {
	return &StockRepository{db: db}
}

// GetStocks retrieves all stocks. Returns an empty slice when the table is empty.
func (s *StockRepository) GetStocks() ([]model.Stock, error) {
	query := `
		SELECT id, symbol, company_name, current_price, quantity
		FROM stock
		ORDER BY id ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	stocks := []model.Stock{}

	for rows.Next() {
		var st model.Stock

		err := rows.Scan(
			&st.ID,
			&st.Symbol,
			&st.CompanyName,
			&st.CurrentPrice,
			&st.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}

		stocks = append(stocks, st)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	return stocks, nil
}

// GetStockOnID retrieves a single stock by its ID.
func (s *StockRepository) GetStockOnID(stockID int64) (model.Stock, error) {
	query := `
		SELECT id, symbol, company_name, current_price, quantity
		FROM stock
		WHERE id = ?
	`
	var st model.Stock

	err := s.db.QueryRow(query, stockID).Scan(
		&st.ID,
		&st.Symbol,
		&st.CompanyName,
		&st.CurrentPrice,
		&st.Quantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to query stock: %w", err)
	}

	return st, nil
}

// GetStockOnSymbol retrieves a single stock by its symbol. The lookup is
// case-insensitive (the symbol column is declared COLLATE NOCASE).
func (s *StockRepository) GetStockOnSymbol(symbol string) (model.Stock, error) {
	query := `
		SELECT id, symbol, company_name, current_price, quantity
		FROM stock
		WHERE symbol = ?
	`
	var st model.Stock

	err := s.db.QueryRow(query, symbol).Scan(
		&st.ID,
		&st.Symbol,
		&st.CompanyName,
		&st.CurrentPrice,
		&st.Quantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Stock{}, apperrors.ErrStockNotFound
	}
	if err != nil {
		return model.Stock{}, fmt.Errorf("failed to query stock: %w", err)
	}

	return st, nil
}

// GetStocksOnIDs retrieves the stocks matching the given IDs and reports
// which requested IDs were not found, so callers can decide whether to
// error or proceed with the partial set.
func (s *StockRepository) GetStocksOnIDs(stockIDs []int64) ([]model.Stock, []int64, error) {
	if len(stockIDs) == 0 {
		return []model.Stock{}, nil, nil
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, symbol, company_name, current_price, quantity
		FROM stock
		WHERE id IN (` + placeholders(len(stockIDs)) + `)
	`

	rows, err := s.db.Query(query, int64Args(stockIDs)...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query stock table: %w", err)
	}
	defer rows.Close()

	found := make(map[int64]bool, len(stockIDs))
	stocks := []model.Stock{}

	for rows.Next() {
		var st model.Stock

		err := rows.Scan(
			&st.ID,
			&st.Symbol,
			&st.CompanyName,
			&st.CurrentPrice,
			&st.Quantity,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan stock table results: %w", err)
		}

		found[st.ID] = true
		stocks = append(stocks, st)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating stock table: %w", err)
	}

	var missing []int64
	for _, id := range stockIDs {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	return stocks, missing, nil
}

// SaveStock inserts a new stock when the ID is zero, otherwise updates the
// existing row (inserting with the explicit ID when no row matches, matching
// upsert-by-identifier semantics). The assigned ID is written back.
func (s *StockRepository) SaveStock(st *model.Stock) error {
	if st.ID == 0 {
		result, err := s.db.Exec(`
			INSERT INTO stock (symbol, company_name, current_price, quantity)
			VALUES (?, ?, ?, ?)
		`, st.Symbol, st.CompanyName, st.CurrentPrice, st.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert stock: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted stock id: %w", err)
		}
		st.ID = id
		return nil
	}

	result, err := s.db.Exec(`
		UPDATE stock
		SET symbol = ?, company_name = ?, current_price = ?, quantity = ?
		WHERE id = ?
	`, st.Symbol, st.CompanyName, st.CurrentPrice, st.Quantity, st.ID)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		_, err := s.db.Exec(`
			INSERT INTO stock (id, symbol, company_name, current_price, quantity)
			VALUES (?, ?, ?, ?, ?)
		`, st.ID, st.Symbol, st.CompanyName, st.CurrentPrice, st.Quantity)
		if err != nil {
			return fmt.Errorf("failed to insert stock: %w", err)
		}
	}

	return nil
}

// UpdateStockPrice updates only the current price of a stock.
func (s *StockRepository) UpdateStockPrice(stockID int64, price float64) error {
	_, err := s.db.Exec(`UPDATE stock SET current_price = ? WHERE id = ?`, price, stockID)
	if err != nil {
		return fmt.Errorf("failed to update stock price: %w", err)
	}
	return nil
}

// DeleteStockOnID deletes a stock by ID. Returns ErrStockNotFound when no
// row matched.
func (s *StockRepository) DeleteStockOnID(stockID int64) error {
	result, err := s.db.Exec(`DELETE FROM stock WHERE id = ?`, stockID)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrStockNotFound
	}

	return nil
}

// TotalValue returns the sum of price times quantity over every stored stock.
func (s *StockRepository) TotalValue() (float64, error) {
	var total float64
	err := s.db.QueryRow(`
		SELECT COALESCE(SUM(current_price * quantity), 0) FROM stock
	`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum stock values: %w", err)
	}
	return total, nil
}
