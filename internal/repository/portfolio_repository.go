package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio and
// portfolio_stock tables.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolios retrieves all portfolios. Returns an empty slice when none exist.
func (s *PortfolioRepository) GetPortfolios() ([]model.Portfolio, error) {
	query := `
		SELECT id, name, description
		FROM portfolio
		ORDER BY id ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio by its ID.
func (s *PortfolioRepository) GetPortfolioOnID(portfolioID int64) (model.Portfolio, error) {
	query := `
		SELECT id, name, description
		FROM portfolio
		WHERE id = ?
	`
	var p model.Portfolio

	err := s.db.QueryRow(query, portfolioID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return p, nil
}

// ExistsOnID reports whether a portfolio with the given ID exists.
func (s *PortfolioRepository) ExistsOnID(portfolioID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM portfolio WHERE id = ?)`, portfolioID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query portfolio existence: %w", err)
	}
	return exists, nil
}

// SavePortfolio inserts or updates a portfolio and replaces its stock set
// wholesale, all within a single transaction. The assigned ID is written back.
func (s *PortfolioRepository) SavePortfolio(p *model.Portfolio, stockIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if p.ID == 0 {
		result, err := tx.Exec(`
			INSERT INTO portfolio (name, description)
			VALUES (?, ?)
		`, p.Name, p.Description)
		if err != nil {
			return fmt.Errorf("failed to insert portfolio: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted portfolio id: %w", err)
		}
		p.ID = id
	} else {
		result, err := tx.Exec(`
			UPDATE portfolio SET name = ?, description = ? WHERE id = ?
		`, p.Name, p.Description, p.ID)
		if err != nil {
			return fmt.Errorf("failed to update portfolio: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			_, err := tx.Exec(`
				INSERT INTO portfolio (id, name, description) VALUES (?, ?, ?)
			`, p.ID, p.Name, p.Description)
			if err != nil {
				return fmt.Errorf("failed to insert portfolio: %w", err)
			}
		}
	}

	if _, err := tx.Exec(`DELETE FROM portfolio_stock WHERE portfolio_id = ?`, p.ID); err != nil {
		return fmt.Errorf("failed to clear portfolio stocks: %w", err)
	}

	for _, stockID := range stockIDs {
		if _, err := tx.Exec(`
			INSERT INTO portfolio_stock (portfolio_id, stock_id) VALUES (?, ?)
		`, p.ID, stockID); err != nil {
			return fmt.Errorf("failed to insert portfolio stock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit portfolio save: %w", err)
	}

	return nil
}

// GetStocksOnPortfolio retrieves the stocks belonging to a portfolio via the
// portfolio_stock join table.
func (s *PortfolioRepository) GetStocksOnPortfolio(portfolioID int64) ([]model.Stock, error) {
	query := `
		SELECT st.id, st.symbol, st.company_name, st.current_price, st.quantity
		FROM stock st
		INNER JOIN portfolio_stock ps ON ps.stock_id = st.id
		WHERE ps.portfolio_id = ?
		ORDER BY st.id ASC
	`

	rows, err := s.db.Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_stock table: %w", err)
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
			return nil, fmt.Errorf("failed to scan portfolio_stock table results: %w", err)
		}

		stocks = append(stocks, st)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_stock table: %w", err)
	}

	return stocks, nil
}

// DeletePortfolioOnID deletes a portfolio by ID. Join-table rows cascade.
// Returns ErrPortfolioNotFound when no row matched.
func (s *PortfolioRepository) DeletePortfolioOnID(portfolioID int64) error {
	result, err := s.db.Exec(`DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}
