package main

import (
	"fmt"
	"os"
	"path/filepath"

	"crime-report/config"
	"crime-report/models"
	"crime-report/render"
	"crime-report/services"
	"crime-report/storage"
	"crime-report/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Homicide Report Generator starting ===")
	logger.Info("Config — backend: %s | store: %s | images: %s | report: %s",
		cfg.Backend, cfg.StoreDescription(), cfg.ImagesDir, cfg.ReportPath)

	dataset, err := loadIncidents(cfg)
	if err != nil {
		logger.Error("Failed to load incidents: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d homicide records from the store", len(dataset.Incidents))

	deriver := services.NewDeriver(logger)
	deriver.Derive(dataset.Incidents)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV export: %v", err)
		os.Exit(1)
	}
	if err := csvWriter.Write(dataset.Incidents); err != nil {
		_ = csvWriter.Close()
		logger.Error("CSV export failed: %v", err)
		os.Exit(1)
	}
	if err := csvWriter.Close(); err != nil {
		logger.Error("CSV export failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Filtered dataset exported to %s", cfg.CSVOutputPath)

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(dataset)
	insightSvc.Print(report)

	charts, err := render.NewChartRenderer(cfg.ImagesDir, logger)
	if err != nil {
		logger.Error("Chart renderer setup failed: %v", err)
		os.Exit(1)
	}
	dayChart, err := charts.RenderDayChart(report)
	if err != nil {
		logger.Error("Day-of-week chart failed: %v", err)
		os.Exit(1)
	}
	hourChart, err := charts.RenderHourChart(report)
	if err != nil {
		logger.Error("Time-of-day chart failed: %v", err)
		os.Exit(1)
	}

	mapRenderer, err := render.NewMapRenderer(cfg.ImagesDir, logger)
	if err != nil {
		logger.Error("Map renderer setup failed: %v", err)
		os.Exit(1)
	}
	mapPath, err := mapRenderer.Render(dataset.Incidents)
	if err != nil {
		logger.Error("Map rendering failed: %v", err)
		os.Exit(1)
	}

	if cfg.MapSnapshot {
		snap := render.NewMapSnapshot(cfg.ChromeBin, logger)
		out := filepath.Join(cfg.ImagesDir, "homicides_map_snapshot.png")
		if err := snap.Capture(mapPath, out); err != nil {
			logger.Error("Map snapshot failed: %v", err)
			os.Exit(1)
		}
	}

	composer := render.NewReportComposer(cfg.ReportPath, logger)
	if err := composer.Compose(report, dayChart, hourChart, mapPath); err != nil {
		logger.Error("Report composition failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("\n  Homicide analysis report has been generated and saved as %q.\n\n",
		cfg.ReportPath)
}

// loadIncidents opens the configured store, runs the category filter, and
// closes the connection before anything downstream runs, on success and
// failure alike.
func loadIncidents(cfg *config.Config) (*models.Dataset, error) {
	var (
		src storage.IncidentSource
		err error
	)
	switch cfg.Backend {
	case "postgres":
		src, err = storage.NewPostgresSource(cfg.DSN())
	default:
		src, err = storage.NewSQLiteSource(cfg.SQLitePath)
	}
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return src.FetchByCategory(cfg.CategoryFilter)
}
