package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bhopalpolice/armory-backend/api/routes"
	"github.com/bhopalpolice/armory-backend/internal/notifications"
	"github.com/bhopalpolice/armory-backend/internal/records"
	"github.com/bhopalpolice/armory-backend/internal/reports"
	"github.com/bhopalpolice/armory-backend/pkg/config"
	"github.com/bhopalpolice/armory-backend/pkg/logger"
	"github.com/bhopalpolice/armory-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	apiMetrics := metrics.NewAPIMetrics(registry)

	store := records.NewStore(cfg.Data.StrictDuplicateKeys)
	if err := store.LoadFile(cfg.Data.LicenseFile); err != nil {
		ctx := logg.WithFields(context.Background(), map[string]any{
			"file":  cfg.Data.LicenseFile,
			"error": err.Error(),
		})
		logg.Warn(ctx, "could not load license records, starting with an empty table")
	} else if dups := store.DuplicateKeys(); len(dups) > 0 {
		ctx := logg.WithFields(context.Background(), map[string]any{
			"file":           cfg.Data.LicenseFile,
			"records":        store.Len(),
			"duplicate_keys": dups,
		})
		logg.Warn(ctx, "license records loaded with duplicate license numbers")
	} else {
		ctx := logg.WithFields(context.Background(), map[string]any{
			"file":    cfg.Data.LicenseFile,
			"records": store.Len(),
		})
		logg.Info(ctx, "license records loaded")
	}
	apiMetrics.SetRecordsLoaded(store.Len())

	notificationLog := notifications.NewLog()
	notificationsService, err := notifications.NewService(notificationLog, apiMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.Params{
		Source:               store,
		ExpiryWarningDays:    cfg.Report.ExpiryWarningDays,
		ConcentrationPercent: cfg.Report.ConcentrationPercent,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, store, reportsService, notificationsService, apiMetrics, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
