package main

import (
	"fmt"

	"github.com/deppfellow/vehicle-api/internal/config"
	"github.com/deppfellow/vehicle-api/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "vehicles",
	Short:         "Vehicle API service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// bootstrap loads configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	return cfg, loggerService, &log, nil
}
