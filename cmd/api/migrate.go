package main

import (
	"productos-api/config"
	pgxrepo "productos-api/internal/repository/pgx"
	"productos-api/pkg/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the products and productos tables if they are missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger.Init(cfg.Env, cfg.LogLevel)

		pool, err := pgxrepo.NewPgxPool(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		return pgxrepo.Migrate(cmd.Context(), pool, pgxrepo.ProductsTable, pgxrepo.ProductosTable)
	},
}
