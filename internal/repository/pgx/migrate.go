package pgxrepo

import (
	"context"
	"fmt"

	"productos-api/pkg/logger"
)

// Migrate creates every given table that is missing. Existing tables are left alone.
func Migrate(ctx context.Context, db DBTX, tables ...Table) error {
	for _, t := range tables {
		if _, err := db.Exec(ctx, t.DDL()); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
		logger.Info().Str("table", t.Name).Msg("Table ready")
	}
	return nil
}
