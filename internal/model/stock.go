package model

// Stock is a stored stock row. CurrentPrice is the last known price in the
// local currency and Quantity is the globally held share count.
type Stock struct {
	ID           int64
	Symbol       string
	CompanyName  string
	CurrentPrice float64
	Quantity     int
}

// TotalValue is the current price times the held quantity.
func (s Stock) TotalValue() float64 {
	return s.CurrentPrice * float64(s.Quantity)
}

// StockQuote is a stock enriched with live market data. For stored stocks the
// ID and Quantity come from the database row; for popular symbols without a
// row they carry a synthetic ID and zero quantity.
type StockQuote struct {
	ID            int64
	Symbol        string
	CompanyName   string
	CurrentPrice  float64
	Quantity      int
	TotalValue    float64
	ChangePercent float64
}

// QuoteFromStock builds a quote from a stored row alone, used when live data
// is unavailable. The change percent is zero because there is nothing to
// compare against.
func QuoteFromStock(s Stock) StockQuote {
	return StockQuote{
		ID:            s.ID,
		Symbol:        s.Symbol,
		CompanyName:   s.CompanyName,
		CurrentPrice:  s.CurrentPrice,
		Quantity:      s.Quantity,
		TotalValue:    s.TotalValue(),
		ChangePercent: 0,
	}
}
