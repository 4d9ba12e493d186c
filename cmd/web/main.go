package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"superstore-dashboard/internal/config"
	"superstore-dashboard/internal/dataset"
	"superstore-dashboard/internal/middleware"
	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/observability"
	"superstore-dashboard/internal/server"
	"superstore-dashboard/internal/ui/templates"
)

const (
	renderTimeout = 10 * time.Second
	loadTimeout   = 30 * time.Second
	cacheMaxAge   = "public, max-age=300"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		dataFile string
		port     int
	)

	cmd := &cobra.Command{
		Use:          "superstore-dashboard",
		Short:        "Superstore sales analytics dashboard",
		Long:         "Loads the Superstore sales CSV, prepares the dataset, and serves the interactive analytics dashboard.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dataFile, port)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "path to the Superstore CSV (overrides DATA_CSV_FILE)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides SERVER_PORT)")

	return cmd
}

func run(dataFile string, port int) error {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if dataFile != "" {
		cfg.Data.CSVFile = dataFile
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application", "csv_file", cfg.Data.CSVFile, "addr", cfg.Address())

	// Preparation failure is fatal: no dashboard is served on bad input.
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	start := time.Now()
	ds, metrics, err := dataset.Load(ctx, cfg.Data.CSVFile)
	if err != nil {
		return fmt.Errorf("prepare dataset: %w", err)
	}
	logger.Info("dataset prepared",
		"records", ds.Len(),
		"total_sales", metrics.TotalSales,
		"total_orders", metrics.TotalOrders,
		"unique_customers", metrics.UniqueCustomers,
		"duration", time.Since(start),
	)

	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardHandler(ds, metrics),
	}

	srv := server.NewServer(ds, metrics, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)
	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      middlewareChain(srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server.ShutdownTimeout)
	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("releasing dataset")
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("application stopped gracefully")
	return nil
}

func dashboardHandler(ds *dataset.Dataset, metrics models.Metrics) http.HandlerFunc {
	page := templates.Dashboard(templates.DashboardData{
		Metrics:    metrics,
		Categories: ds.Categories(),
		Regions:    ds.Regions(),
		Years:      ds.Years(),
	})

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		w.Header().Set("Cache-Control", cacheMaxAge)
		if err := page.Render(ctx, w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}
