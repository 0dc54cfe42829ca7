// Package testutil provides test helpers: an in-memory database with the
// production schema, entity builders, and a mock quote client.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE user (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username VARCHAR(50) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			email VARCHAR(255),
			api_key VARCHAR(500)
		);

		CREATE TABLE stock (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol VARCHAR(10) NOT NULL UNIQUE COLLATE NOCASE,
			company_name VARCHAR(255),
			current_price FLOAT NOT NULL DEFAULT 0,
			quantity INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE portfolio (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) NOT NULL,
			description TEXT
		);

		CREATE TABLE portfolio_stock (
			portfolio_id INTEGER NOT NULL,
			stock_id INTEGER NOT NULL,
			PRIMARY KEY (portfolio_id, stock_id),
			FOREIGN KEY (portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			FOREIGN KEY (stock_id) REFERENCES stock(id) ON DELETE CASCADE
		);

		CREATE TABLE watchlist (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) NOT NULL,
			user_id INTEGER NOT NULL,
			FOREIGN KEY (user_id) REFERENCES user(id)
		);

		CREATE TABLE watchlist_stock (
			watchlist_id INTEGER NOT NULL,
			stock_id INTEGER NOT NULL,
			PRIMARY KEY (watchlist_id, stock_id),
			FOREIGN KEY (watchlist_id) REFERENCES watchlist(id) ON DELETE CASCADE,
			FOREIGN KEY (stock_id) REFERENCES stock(id) ON DELETE CASCADE
		);

		-- No foreign keys: deleting a stock must leave its transactions
		-- readable with a dangling stock id.
		CREATE TABLE "transaction" (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			portfolio_id INTEGER NOT NULL,
			stock_id INTEGER NOT NULL,
			type VARCHAR(4) NOT NULL,
			amount FLOAT NOT NULL,
			price_per_unit FLOAT NOT NULL,
			transaction_date DATETIME NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
