package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"analytics-gateway/internal/config"
	"analytics-gateway/internal/controller"
	"analytics-gateway/internal/db"
	httpserver "analytics-gateway/internal/http"
	"analytics-gateway/internal/logging"
	"analytics-gateway/internal/metrics"
	"analytics-gateway/internal/repository"
	"analytics-gateway/internal/service"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP gateway",
	Long: `Run the HTTP gateway on HTTP_PORT.

When CLICKHOUSE_URL is set, every report fetch is recorded in the
report_fetches table. When METRICS_ENABLED is true, Prometheus metrics
are served on /metrics.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer := newLogger(cfg)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker, closeAudit, err := newAuditWorker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAudit()

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	transport := newTransport()
	mailchimpAPI, err := newMailchimpAPI(cfg, transport)
	if err != nil {
		return fmt.Errorf("mailchimp client: %w", err)
	}

	analyticsService := service.NewAnalyticsService(analyticsConfig(cfg, transport), worker, collector, logger)
	mailchimpService := service.NewMailchimpService(mailchimpAPI, collector, logger)

	server := httpserver.NewServer(cfg, logger, collector, httpserver.Handlers{
		Analytics: controller.NewAnalyticsController(analyticsService),
		Mailchimp: controller.NewMailchimpController(mailchimpService),
		Health:    controller.NewHealthController(cfg),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(cfg.HTTPPort)
	}()
	logger.Info("starting server",
		slog.String("addr", cfg.HTTPPort),
		slog.String("environment", cfg.Environment),
		slog.Bool("audit", cfg.AuditEnabled()),
		slog.Bool("metrics", cfg.MetricsEnabled),
		slog.Bool("mailchimp", mailchimpAPI != nil))

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", logging.Err(err))
	}
	if err := <-errCh; err != nil {
		logger.Warn("listener returned", logging.Err(err))
	}
	return nil
}

// newAuditWorker connects to ClickHouse when configured; otherwise records
// are discarded. The returned func flushes the worker and closes the connection.
func newAuditWorker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.AuditWorker, func(), error) {
	if !cfg.AuditEnabled() {
		return service.NewNopAuditWorker(), func() {}, nil
	}

	conn, err := db.NewConnection(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect clickhouse: %w", err)
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	repo := repository.NewFetchRepository(conn)
	worker := service.NewBatchAuditWorker(repo, cfg.AuditBufferSize, cfg.AuditBatchSize, cfg.AuditFlushEvery, logger)

	return worker, func() {
		worker.Shutdown()
		if err := conn.Close(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("closing clickhouse", logging.Err(err))
		}
	}, nil
}
