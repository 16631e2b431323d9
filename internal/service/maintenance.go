package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/shopgrid/internal/database"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes the catalog. It keeps the schema intact so seeding can follow.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	return database.WithTx(s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"products", "categories"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	})
}
