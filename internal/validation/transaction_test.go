package validation

import (
	"testing"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/request"
	"github.com/stockfolio/portfolio-tracker-backend/internal/model"
)

func validTransactionRequest() request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		PortfolioID:     1,
		StockID:         2,
		TransactionType: model.TransactionBuy,
		Amount:          3,
		PricePerUnit:    100,
	}
}

// TestValidateCreateTransaction covers the field rules for transaction bodies.
func TestValidateCreateTransaction(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		if err := ValidateCreateTransaction(validTransactionRequest()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("symbol can stand in for stock id", func(t *testing.T) {
		req := validTransactionRequest()
		req.StockID = 0
		req.StockSymbol = "AAPL"
		if err := ValidateCreateTransaction(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("date formats", func(t *testing.T) {
		for _, date := range []string{"2024-06-15", "2024-06-15T10:30:00Z", ""} {
			req := validTransactionRequest()
			req.TransactionDate = date
			if err := ValidateCreateTransaction(req); err != nil {
				t.Errorf("Date %q: expected no error, got %v", date, err)
			}
		}

		req := validTransactionRequest()
		req.TransactionDate = "15/06/2024"
		if err := ValidateCreateTransaction(req); err == nil {
			t.Error("Expected error for unsupported date format")
		}
	})

	tests := []struct {
		name     string
		mutate   func(*request.CreateTransactionRequest)
		badField string
	}{
		{
			name:     "missing portfolio id",
			mutate:   func(r *request.CreateTransactionRequest) { r.PortfolioID = 0 },
			badField: "portfolioId",
		},
		{
			name: "missing stock reference",
			mutate: func(r *request.CreateTransactionRequest) {
				r.StockID = 0
				r.StockSymbol = "  "
			},
			badField: "stockId",
		},
		{
			name:     "missing type",
			mutate:   func(r *request.CreateTransactionRequest) { r.TransactionType = "" },
			badField: "transactionType",
		},
		{
			name:     "invalid type",
			mutate:   func(r *request.CreateTransactionRequest) { r.TransactionType = "HOLD" },
			badField: "transactionType",
		},
		{
			name:     "lowercase type rejected",
			mutate:   func(r *request.CreateTransactionRequest) { r.TransactionType = "buy" },
			badField: "transactionType",
		},
		{
			name:     "zero amount",
			mutate:   func(r *request.CreateTransactionRequest) { r.Amount = 0 },
			badField: "amount",
		},
		{
			name:     "negative price",
			mutate:   func(r *request.CreateTransactionRequest) { r.PricePerUnit = -1 },
			badField: "pricePerUnit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTransactionRequest()
			tt.mutate(&req)

			err := ValidateCreateTransaction(req)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}

			var vErr *Error
			ok := false
			if e, isValidation := err.(*Error); isValidation {
				vErr, ok = e, true
			}
			if !ok {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if _, present := vErr.Fields[tt.badField]; !present {
				t.Errorf("Expected field %q in error, got %v", tt.badField, vErr.Fields)
			}
		})
	}
}

// TestParseID covers path-parameter parsing.
func TestParseID(t *testing.T) {
	t.Run("positive integer parses", func(t *testing.T) {
		id, err := ParseID("42")
		if err != nil {
			t.Fatalf("ParseID(42) returned unexpected error: %v", err)
		}
		if id != 42 {
			t.Errorf("ParseID(42) = %d, want 42", id)
		}
	})

	for _, raw := range []string{"", "abc", "0", "-5", "1.5"} {
		t.Run("rejects "+raw, func(t *testing.T) {
			if _, err := ParseID(raw); err == nil {
				t.Errorf("Expected error for %q, got nil", raw)
			}
		})
	}
}
