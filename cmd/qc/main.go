package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"meteo-qc/internal/config"
	"meteo-qc/internal/models"
	"meteo-qc/internal/qc"
	"meteo-qc/internal/render"
	"meteo-qc/internal/repository"
	"meteo-qc/internal/seriesio"
	"meteo-qc/internal/services"
	"meteo-qc/pkg/database"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

func main() {
	input := flag.String("input", "", "Raw 1-min data file (e.g. Meteo_1min_2021_raw.dat)")
	output := flag.String("output", "", "Quality-controlled output file (e.g. Meteo_1min_2021_qc.csv)")
	logPath := flag.String("log", "", "QC log file (e.g. Meteo_2021_log.txt)")
	label := flag.String("label", "", "Run label, typically the processed year")
	archive := flag.Bool("archive", false, "Archive the run to the database after processing")
	flag.Parse()

	if *input == "" || *output == "" || *logPath == "" {
		fmt.Fprintln(os.Stderr, "usage: qc -input FILE -output FILE -log FILE [-label YEAR] [-archive]")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logLevel := logging.InfoLevel
	if cfg.Logging.Level == "debug" {
		logLevel = logging.DebugLevel
	}

	logger := logging.NewStructuredLogger("meteo-qc", "1.0.0", logLevel)

	ctx := context.Background()
	logger.Info(ctx, "[QC_CLI_START] Starting quality-control run", logging.Fields{
		"version": "1.0.0",
		"input":   *input,
		"output":  *output,
		"label":   *label,
		"archive": *archive,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("meteo_qc")

	// Read the raw series
	raw, err := seriesio.ReadFile(*input, seriesio.ReadOptions{TimeColumn: "time"})
	if err != nil {
		logger.Fatal(ctx, "[QC_READ_ERROR] Failed to read input file", logging.Fields{
			"input": *input,
		}, err)
	}

	// Run the pipeline
	pipeline := services.NewPipelineService(logger, metricsCollector)
	opts := services.RunOptions{
		Label:              *label,
		StationID:          cfg.QC.StationID,
		Step:               cfg.QC.Step,
		BatteryFloor:       cfg.QC.BatteryFloor,
		Specs:              models.DefaultChannelSpecs(),
		GradientThresholds: qc.DefaultGradientThresholds,
	}

	startedAt := time.Now().UTC()
	result, err := pipeline.RunQC(ctx, raw, opts)
	if err != nil {
		logger.Fatal(ctx, "[QC_RUN_ERROR] Quality-control run failed", logging.Fields{
			"input": *input,
		}, err)
	}

	// Write the cleaned series at the raw resolution's precision
	writeOpts := seriesio.WriteOptions{Precision: 1}
	if err := seriesio.WriteFile(*output, result.Series, writeOpts); err != nil {
		logger.Fatal(ctx, "[QC_WRITE_ERROR] Failed to write QC output", logging.Fields{
			"output": *output,
		}, err)
	}

	// Render the QC log
	logFile, err := os.Create(*logPath)
	if err != nil {
		logger.Fatal(ctx, "[QC_LOG_ERROR] Failed to create log file", logging.Fields{
			"log": *logPath,
		}, err)
	}

	logInput := render.LogInput{
		Label:      *label,
		Series:     result.Series,
		Report:     result.Report,
		Specs:      opts.Specs,
		Monthly:    result.Monthly,
		Annual:     result.Annual,
		Thresholds: opts.GradientThresholds,
	}
	if err := render.WriteLog(logFile, logInput); err != nil {
		logFile.Close()
		logger.Fatal(ctx, "[QC_LOG_ERROR] Failed to render log", logging.Fields{
			"log": *logPath,
		}, err)
	}
	if err := logFile.Close(); err != nil {
		logger.Fatal(ctx, "[QC_LOG_ERROR] Failed to close log file", logging.Fields{
			"log": *logPath,
		}, err)
	}

	// Archive the run if requested
	if *archive {
		dbConfig := &database.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Database,
			SSLMode:         cfg.Database.SSLMode,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		}

		db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
		if err != nil {
			logger.Fatal(ctx, "[QC_DB_ERROR] Failed to connect to archive database", logging.Fields{}, err)
		}
		defer db.Close()

		repo := repository.NewArchiveRepository(db, logger, metricsCollector)
		archiver := services.NewArchiveService(repo, logger, metricsCollector)

		runID, err := archiver.ArchiveRun(ctx, result, opts, *input, startedAt)
		if err != nil {
			logger.Fatal(ctx, "[QC_ARCHIVE_ERROR] Failed to archive run", logging.Fields{}, err)
		}

		fmt.Printf("Archived run %d\n", runID)
	}

	fmt.Printf("Rows:            %d\n", result.Series.Len())
	fmt.Printf("Missing values:  %d\n", len(result.Report.MissingTimestamps()))
	fmt.Printf("Findings:        %d\n", len(result.Report.Findings()))
	fmt.Printf("Duration:        %v\n", result.Duration)

	logger.Info(ctx, "[QC_CLI_COMPLETE] Quality-control run completed", logging.Fields{
		"rows":             result.Series.Len(),
		"findings":         len(result.Report.Findings()),
		"duration_seconds": result.Duration.Seconds(),
	})
}
