package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/vehicle-api/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Error().Err(err).Msg("migration failed")
		return err
	}
	return nil
}
