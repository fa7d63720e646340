package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the tables and seed the sample festival, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		return prepareStore(cmd.Context(), db)
	},
}

// prepareStore creates the schema and seeds an empty store.
func prepareStore(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := database.CreateSchema(ctx, db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	seeded, err := database.Seed(ctx, db, time.Now())
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("store ready", zap.String("driver", cfg.DBDriver), zap.Bool("seeded", seeded))
	return nil
}
