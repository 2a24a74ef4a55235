package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/vehicle-api/internal/controller"
	"github.com/deppfellow/vehicle-api/internal/database"
	"github.com/deppfellow/vehicle-api/internal/handler"
	"github.com/deppfellow/vehicle-api/internal/metrics"
	"github.com/deppfellow/vehicle-api/internal/repository"
	"github.com/deppfellow/vehicle-api/internal/router"
	"github.com/deppfellow/vehicle-api/internal/server"
	"github.com/spf13/cobra"
)

// DefaultContextTimeout bounds graceful shutdown.
const DefaultContextTimeout = 30 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if migrateOnStart {
		if err := database.Migrate(ctx, log, cfg); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	if err := wireServer(srv); err != nil {
		if closeErr := srv.Shutdown(context.Background()); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to release server resources")
		}
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	var startErr error
	select {
	case startErr = <-errCh:
		if startErr != nil {
			log.Error().Err(startErr).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if startErr != nil {
		return fmt.Errorf("serve: %w", startErr)
	}

	log.Info().Msg("server exited properly")
	return nil
}

// wireServer builds the create vehicle pipeline on srv and installs the router.
func wireServer(srv *server.Server) error {
	recorder, err := metrics.NewVehicleMetrics(srv.Metrics)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	repos := repository.NewRepositories(srv)
	controllers := controller.NewControllers(repos, controller.WithRecorder(recorder))
	handlers := handler.NewHandlers(srv, controllers)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers))
	return nil
}
