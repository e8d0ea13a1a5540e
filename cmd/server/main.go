package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"model-serving-service/internal/adapters/primary/http/handlers"
	"model-serving-service/internal/adapters/primary/http/middleware"
	"model-serving-service/internal/adapters/secondary/inference"
	"model-serving-service/internal/adapters/secondary/kserve"
	"model-serving-service/internal/adapters/secondary/mlflow"
	"model-serving-service/internal/adapters/secondary/postgres"
	"model-serving-service/internal/config"
	"model-serving-service/internal/core/domain"
	output "model-serving-service/internal/core/ports/output"
	"model-serving-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cfg.Logger.Apply()

	if err := cfg.RequireRegistryCredentials(); err != nil {
		log.Fatalf("registry credentials: %v", err)
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters
	registry := mlflow.NewRegistryClient(&cfg.Registry)

	// KServe Locator (Optional - based on config)
	var locator output.ServingLocator
	if cfg.Kubernetes.Enabled {
		l, err := kserve.NewKServeLocator(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("KServe locator init failed (continuing with %s): %v", cfg.Serving.URL, err)
		} else {
			locator = l
			log.Info("KServe locator initialized")
		}
	} else {
		log.Info("KServe integration disabled")
	}

	loader, err := inference.NewLoader(&cfg.Serving, locator)
	if err != nil {
		log.Fatalf("create model loader: %v", err)
	}

	// Report Store (Optional - based on config)
	var reports output.ReportRepository
	if cfg.Database.Enabled {
		repo, closeStore, err := postgres.OpenReportStore(context.Background(), &cfg.Database)
		if err != nil {
			log.Warnf("database init failed (continuing without report store): %v", err)
		} else {
			defer closeStore()
			reports = repo
			log.Info("database connection established")
		}
	} else {
		log.Info("report store disabled")
	}

	// Core Services
	modelSvc := services.NewModelLoaderService(registry, loader)
	version, predictor, err := modelSvc.LoadLatest(context.Background(), cfg.Model.Name, domain.Stage(cfg.Model.Stage))
	if err != nil {
		log.Fatalf("load model: %v", err)
	}

	predictionSvc := services.NewPredictionService(predictor, version)
	reportSvc := services.NewReportService(reports)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(predictionSvc, reportSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())
	h.RegisterRoutes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.WithField("model", version.URI()).Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}
