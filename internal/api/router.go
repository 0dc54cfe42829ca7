// Package api wires handlers, middleware, and routes into the HTTP surface
// of the portfolio tracker.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stockfolio/portfolio-tracker-backend/internal/api/handlers"
	"github.com/stockfolio/portfolio-tracker-backend/internal/api/middleware"
)

// Handlers groups the handler dependencies of the router.
type Handlers struct {
	Stock       *handlers.StockHandler
	Portfolio   *handlers.PortfolioHandler
	Transaction *handlers.TransactionHandler
	Watchlist   *handlers.WatchlistHandler
	User        *handlers.UserHandler
	System      *handlers.SystemHandler
}

// NewRouter builds the chi router with all middleware and routes mounted.
func NewRouter(h Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORS(allowedOrigins).Handler)

	r.Route("/stocks", func(r chi.Router) {
		r.Post("/", h.Stock.CreateOrUpdateStock)
		r.Get("/", h.Stock.AllStocks)
		r.Get("/total-value", h.Stock.TotalValue)
		r.Get("/history/{symbol}/{period}", h.Stock.StockHistory)
		r.Get("/symbol/{symbol}", h.Stock.GetStockBySymbol)
		r.Delete("/symbol/{symbol}", h.Stock.DeleteStockBySymbol)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.ValidateIDParam("id"))
			r.Get("/", h.Stock.GetStockByID)
			r.Delete("/", h.Stock.DeleteStockByID)
		})
	})

	r.Route("/portfolios", func(r chi.Router) {
		r.Post("/", h.Portfolio.SavePortfolio)
		r.Get("/", h.Portfolio.AllPortfolios)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.ValidateIDParam("id"))
			r.Get("/", h.Portfolio.GetPortfolioByID)
			r.Delete("/", h.Portfolio.DeletePortfolio)
		})
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", h.Transaction.CreateTransaction)
		r.Get("/", h.Transaction.AllTransactions)
		r.Route("/portfolio/{portfolioId}", func(r chi.Router) {
			r.Use(middleware.ValidateIDParam("portfolioId"))
			r.Get("/", h.Transaction.TransactionsByPortfolio)
		})
		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.ValidateIDParam("id"))
			r.Get("/", h.Transaction.GetTransactionByID)
			r.Delete("/", h.Transaction.DeleteTransaction)
		})
	})

	r.Route("/watchlists", func(r chi.Router) {
		r.Post("/", h.Watchlist.CreateWatchlist)
		r.Get("/", h.Watchlist.AllWatchlists)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.ValidateIDParam("id"))
			r.Get("/", h.Watchlist.GetWatchlistByID)
			r.Put("/", h.Watchlist.UpdateWatchlist)
			r.Delete("/", h.Watchlist.DeleteWatchlist)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.User.SaveUser)
		r.Get("/", h.User.AllUsers)
		r.Get("/username/{username}", h.User.GetUserByUsername)
		r.Delete("/username/{username}", h.User.DeleteUserByUsername)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(middleware.ValidateIDParam("id"))
			r.Get("/", h.User.GetUserByID)
			r.Delete("/", h.User.DeleteUserByID)
		})
	})

	r.Get("/system/health", h.System.Health)

	return r
}
