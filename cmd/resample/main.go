package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"meteo-qc/internal/aggregate"
	"meteo-qc/internal/config"
	"meteo-qc/internal/models"
	"meteo-qc/internal/seriesio"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

func main() {
	input := flag.String("input", "", "Quality-controlled 1-min file (e.g. Meteo_1min_2021_qc.csv)")
	output := flag.String("output", "", "Resampled output file (e.g. Meteo_hourly_2021_qc.csv)")
	period := flag.String("period", "hour", "Aggregation period: hour, month, or year")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(os.Stderr, "usage: resample -input FILE -output FILE [-period hour|month|year]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logLevel := logging.InfoLevel
	if cfg.Logging.Level == "debug" {
		logLevel = logging.DebugLevel
	}

	logger := logging.NewStructuredLogger("meteo-resample", "1.0.0", logLevel)
	metricsCollector := metrics.NewCollector("meteo_resample")

	ctx := context.Background()
	logger.Info(ctx, "[RESAMPLE_START] Starting resampling", logging.Fields{
		"input":  *input,
		"output": *output,
		"period": *period,
	})

	observations, err := seriesio.ReadFile(*input, seriesio.ReadOptions{TimeColumn: "Time"})
	if err != nil {
		logger.Fatal(ctx, "[RESAMPLE_READ_ERROR] Failed to read input file", logging.Fields{
			"input": *input,
		}, err)
	}

	series := &models.Series{Step: cfg.QC.Step, Observations: observations}

	stageStart := time.Now()
	resampled, err := aggregate.Resample(series, aggregate.Period(*period))
	if err != nil {
		logger.Fatal(ctx, "[RESAMPLE_ERROR] Resampling failed", logging.Fields{
			"period": *period,
		}, err)
	}
	metricsCollector.ObserveStage("resample", time.Since(stageStart))

	// Aggregates are written at two decimal places.
	writeOpts := seriesio.WriteOptions{Precision: 2}
	if err := seriesio.WriteFile(*output, resampled, writeOpts); err != nil {
		logger.Fatal(ctx, "[RESAMPLE_WRITE_ERROR] Failed to write output", logging.Fields{
			"output": *output,
		}, err)
	}

	fmt.Printf("Input rows:   %d\n", series.Len())
	fmt.Printf("Output rows:  %d\n", resampled.Len())

	logger.Info(ctx, "[RESAMPLE_COMPLETE] Resampling completed", logging.Fields{
		"rows_in":  series.Len(),
		"rows_out": resampled.Len(),
		"period":   *period,
	})
}
