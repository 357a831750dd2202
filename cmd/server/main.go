package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/handlers"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/config"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/database"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/logging"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/infrastructure/metrics"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/middleware"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories/postgres"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/services/authorization"
)

const defaultEnv = "dev"

func main() {
	// Get environment from ENV variable or use default
	env := os.Getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	// Initialize configuration
	if err := config.InitConfig(env); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(&cfg.Log)

	// Connect to database
	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pg.Close()

	logger.Info("connected to database",
		"user", cfg.Database.User,
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Database,
	)

	// Initialize repositories
	userRepo := postgres.NewPostgresUserRepository(pg.DB)
	projectRepo := postgres.NewPostgresProjectRepository(pg.DB)
	membershipRepo := postgres.NewPostgresMembershipRepository(pg.DB)

	// Initialize the authorization engine
	evaluator := authorization.NewDefaultEvaluator()
	oracle := authorization.NewMembershipOracle(membershipRepo)
	checker := authorization.NewChecker(evaluator, oracle)

	// Initialize metrics
	collector := metrics.NewCollector()
	exporter := metrics.NewPrometheusExporter(collector)

	// Initialize middleware and handlers
	mw := middleware.New(&cfg.Auth, userRepo, evaluator, checker, logger, collector, exporter)
	defer mw.Close()

	handler := handlers.NewHandler(userRepo, projectRepo, membershipRepo, evaluator, pg, collector, logger)
	router := handlers.NewRouter(handler, mw, collector, exporter)

	apiServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	// Start servers
	serverErrors := make(chan error, 2)
	go func() {
		logger.Info("API server listening", "addr", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("API server error: %w", err)
		}
	}()
	go func() {
		logger.Info("metrics server listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErrors:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("API server shutdown failed", "error", err.Error())
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err.Error())
		}

		if err := pg.Close(); err != nil {
			logger.Error("failed to close database connection", "error", err.Error())
		}

		logger.Info("shutdown complete")
	}
}
