// Package scheduler runs optional periodic jobs. Nothing runs unless a
// schedule is configured; by default the service does no background work.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/stockfolio/portfolio-tracker-backend/internal/service"
)

// Scheduler wraps a cron runner around periodic price refreshes.
type Scheduler struct {
	cron         *cron.Cron
	stockService *service.StockService
}

// New creates a Scheduler. Call Start with a cron expression to begin
// running; an empty expression leaves the scheduler inert.
func New(stockService *service.StockService) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		stockService: stockService,
	}
}

// Start registers the price-refresh job under the given cron expression and
// starts the runner. An empty expression is a no-op.
func (s *Scheduler) Start(expr string) error {
	if expr == "" {
		return nil
	}

	_, err := s.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.stockService.RefreshStoredPrices(ctx); err != nil {
			log.Printf("scheduled price refresh failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule price refresh: %w", err)
	}

	s.cron.Start()
	log.Printf("price refresh scheduled: %s", expr)
	return nil
}

// Stop halts the runner and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
