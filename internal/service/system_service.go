package service

import (
	"database/sql"

	"github.com/stockfolio/portfolio-tracker-backend/internal/database"
)

// SystemService exposes operational checks for the running service.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database connection.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// Health reports whether the database connection is usable.
func (s *SystemService) Health() error {
	return database.HealthCheck(s.db)
}
