package main

import (
	"context"
	"os"

	"model-serving-service/internal/adapters/secondary/csvfile"
	"model-serving-service/internal/adapters/secondary/postgres"
	"model-serving-service/internal/config"
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

	ctx := context.Background()

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

	svc := services.NewDataQualityService(csvfile.NewReader(), reports)

	report, err := svc.Run(ctx, services.DataQualityRequest{
		TrainPath:        cfg.Data.TrainPath,
		TestPath:         cfg.Data.TestPath,
		LabelColumn:      cfg.Data.LabelColumn,
		MinPositiveRatio: cfg.Data.MinPositiveRatio,
		MaxPositiveRatio: cfg.Data.MaxPositiveRatio,
	})
	if err != nil {
		log.Errorf("data quality: %v", err)
		return exitSetupFailed
	}

	services.LogReport(report)
	if !report.Passed() {
		return exitChecksFailed
	}
	return 0
}
