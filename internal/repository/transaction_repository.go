package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stockfolio/portfolio-tracker-backend/internal/apperrors"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// InsertTransaction persists a new transaction and writes the assigned ID back.
func (s *TransactionRepository) InsertTransaction(t *model.Transaction) error {
	result, err := s.db.Exec(`
		INSERT INTO "transaction" (portfolio_id, stock_id, type, amount, price_per_unit, transaction_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		t.PortfolioID,
		t.StockID,
		t.Type,
		t.Amount,
		t.PricePerUnit,
		t.TransactionDate.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted transaction id: %w", err)
	}
	t.ID = id

	return nil
}

// GetTransactions retrieves all transactions, optionally filtered to one
// portfolio when portfolioID is non-zero. The stock symbol is resolved with a
// LEFT JOIN so transactions whose stock has since been deleted still read
// back (with an empty symbol).
func (s *TransactionRepository) GetTransactions(portfolioID int64) ([]model.TransactionView, error) {
	query := `
		SELECT t.id, t.portfolio_id, t.stock_id, st.symbol, t.type, t.amount, t.price_per_unit, t.transaction_date
		FROM "transaction" t
		LEFT JOIN stock st ON st.id = t.stock_id
	`

	var args []any

	if portfolioID != 0 {
		query += `
		WHERE t.portfolio_id = ?
		`
		args = append(args, portfolioID)
	}

	query += `
		ORDER BY t.transaction_date ASC
	`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.TransactionView{}

	for rows.Next() {
		t, err := scanTransactionView(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionOnID retrieves a single transaction by its ID.
func (s *TransactionRepository) GetTransactionOnID(transactionID int64) (model.TransactionView, error) {
	query := `
		SELECT t.id, t.portfolio_id, t.stock_id, st.symbol, t.type, t.amount, t.price_per_unit, t.transaction_date
		FROM "transaction" t
		LEFT JOIN stock st ON st.id = t.stock_id
		WHERE t.id = ?
	`

	row := s.db.QueryRow(query, transactionID)
	t, err := scanTransactionView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TransactionView{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.TransactionView{}, err
	}

	return t, nil
}

// ExistsOnID reports whether a transaction with the given ID exists.
func (s *TransactionRepository) ExistsOnID(transactionID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM "transaction" WHERE id = ?)`, transactionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query transaction existence: %w", err)
	}
	return exists, nil
}

// DeleteTransactionOnID deletes a transaction by ID. Returns
// ErrTransactionNotFound when no row matched.
func (s *TransactionRepository) DeleteTransactionOnID(transactionID int64) error {
	result, err := s.db.Exec(`DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransactionView(row scanner) (model.TransactionView, error) {
	var t model.TransactionView
	var symbol sql.NullString
	var dateStr string

	err := row.Scan(
		&t.ID,
		&t.PortfolioID,
		&t.StockID,
		&symbol,
		&t.Type,
		&t.Amount,
		&t.PricePerUnit,
		&dateStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TransactionView{}, err
	}
	if err != nil {
		return model.TransactionView{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	// Symbol is nullable: the referenced stock may have been deleted.
	if symbol.Valid {
		t.StockSymbol = symbol.String
	}

	t.TransactionDate, err = ParseTime(dateStr)
	if err != nil {
		return model.TransactionView{}, fmt.Errorf("failed to parse transaction date: %w", err)
	}

	return t, nil
}
