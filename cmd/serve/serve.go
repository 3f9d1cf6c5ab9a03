// Package serve implements the serve command: the HTTP API plus the
// background digest scheduler.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/goharvest/internal/api"
	"github.com/jonesrussell/goharvest/internal/config"
	"github.com/jonesrussell/goharvest/internal/database"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/metrics"
	"github.com/jonesrussell/goharvest/internal/notify"
	"github.com/jonesrussell/goharvest/internal/scheduler"
	"github.com/jonesrussell/goharvest/internal/stats"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the serve command.
func Command(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the digest scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*cfgFile)
		},
	}
}

// run starts the service and blocks until interrupted.
func run(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	m := metrics.NewMetrics()
	productRepo := database.NewProductRepository(db)
	jobRepo := database.NewJobRepository(db)
	aggregator := stats.NewAggregator(productRepo, jobRepo, log)
	sink := notify.NewWebhookSink(cfg.Digest.WebhookURL, log)

	server := api.NewServer(cfg, api.Handlers{
		Health: api.NewHealthHandler(cfg.App.Name, cfg.App.Version),
		Stats:  api.NewStatsHandler(aggregator, log),
		Ingest: api.NewIngestHandler(productRepo, log, m, cfg.Ingest.DefaultMarginRate),
	}, m, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var digestScheduler *scheduler.DigestScheduler
	if cfg.Digest.Enabled {
		digestScheduler = scheduler.NewDigestScheduler(aggregator, sink, log, m, cfg.Digest.Interval)
		if startErr := digestScheduler.Start(ctx); startErr != nil {
			return fmt.Errorf("failed to start digest scheduler: %w", startErr)
		}
	} else {
		log.Info("Digest scheduler disabled", "environment", cfg.App.Environment)
	}

	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		errChan <- server.Start()
	}()

	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", "signal", sig.String())
	case serveErr := <-errChan:
		if serveErr != nil {
			return serveErr
		}
	}

	if digestScheduler != nil {
		digestScheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}
