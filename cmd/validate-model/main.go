package main

import (
	"context"
	"os"

	"model-serving-service/internal/adapters/secondary/csvfile"
	"model-serving-service/internal/adapters/secondary/inference"
	"model-serving-service/internal/adapters/secondary/kserve"
	"model-serving-service/internal/adapters/secondary/mlflow"
	"model-serving-service/internal/adapters/secondary/postgres"
	"model-serving-service/internal/config"
	"model-serving-service/internal/core/domain"
	output "model-serving-service/internal/core/ports/output"
	"model-serving-service/internal/core/services"

	log "github.com/sirupsen/logrus"
)

const (
	exitChecksFailed = 1
	exitSetupFailed  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Errorf("load config: %v", err)
		return exitSetupFailed
	}

	cfg.Logger.Apply()

	if err := cfg.RequireRegistryCredentials(); err != nil {
		log.Errorf("registry credentials: %v", err)
		return exitSetupFailed
	}

	ctx := context.Background()

	registry := mlflow.NewRegistryClient(&cfg.Registry)

	// KServe Locator (Optional - based on config)
	var locator output.ServingLocator
	if cfg.Kubernetes.Enabled {
		l, err := kserve.NewKServeLocator(&cfg.Kubernetes)
		if err != nil {
			log.Warnf("KServe locator init failed (continuing with %s): %v", cfg.Serving.URL, err)
		} else {
			locator = l
		}
	}

	loader, err := inference.NewLoader(&cfg.Serving, locator)
	if err != nil {
		log.Errorf("create model loader: %v", err)
		return exitSetupFailed
	}

	// Report Store (Optional - based on config)
	var reports output.ReportRepository
	if cfg.Database.Enabled {
		repo, closeStore, err := postgres.OpenReportStore(ctx, &cfg.Database)
		if err != nil {
			log.Warnf("database init failed (report will not be persisted): %v", err)
		} else {
			defer closeStore()
			reports = repo
		}
	}

	svc := services.NewModelValidationService(
		services.NewModelLoaderService(registry, loader),
		csvfile.NewReader(),
		reports,
	)

	report, err := svc.Run(ctx, services.ModelValidationRequest{
		ModelName:   cfg.Model.Name,
		Stage:       domain.Stage(cfg.Model.Stage),
		HeldOutPath: cfg.Data.TestPath,
		LabelColumn: cfg.Data.LabelColumn,
		SampleSize:  cfg.Validation.SampleSize,
		Thresholds: services.Thresholds{
			Accuracy:  cfg.Validation.MinAccuracy,
			Precision: cfg.Validation.MinPrecision,
			Recall:    cfg.Validation.MinRecall,
			F1:        cfg.Validation.MinF1,
		},
	})
	if err != nil {
		log.Errorf("model validation: %v", err)
		return exitSetupFailed
	}

	services.LogReport(report)
	if !report.Passed() {
		return exitChecksFailed
	}
	return 0
}
