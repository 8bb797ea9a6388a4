package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"meteo-qc/internal/config"
	"meteo-qc/internal/models"
	"meteo-qc/internal/seriesio"
	"meteo-qc/internal/services"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

const windowLayout = "2006-01-02 15:04:05"

func main() {
	input := flag.String("input", "", "Quality-controlled 1-min file (e.g. Meteo_1min_2020_qc.csv)")
	output := flag.String("output", "", "Extracted output file (e.g. Meteo_1min_2020_range.csv)")
	start := flag.String("start", "", "Window start, e.g. '2020-08-01 00:00:00'")
	end := flag.String("end", "", "Window end, e.g. '2020-09-30 23:59:00'")
	channels := flag.String("channels", "", "Comma-separated channel subset, e.g. 'T,phi,ws,wd' (default all)")
	flag.Parse()

	if *input == "" || *output == "" || *start == "" || *end == "" {
		fmt.Fprintln(os.Stderr, "usage: extract -input FILE -output FILE -start TIME -end TIME [-channels LIST]")
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

	logger := logging.NewStructuredLogger("meteo-extract", "1.0.0", logLevel)
	metricsCollector := metrics.NewCollector("meteo_extract")
	ctx := context.Background()

	startTime, err := parseWindowTime(*start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -start: %v\n", err)
		os.Exit(1)
	}
	endTime, err := parseWindowTime(*end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -end: %v\n", err)
		os.Exit(1)
	}

	var selection []models.Channel
	if *channels != "" {
		for _, name := range strings.Split(*channels, ",") {
			selection = append(selection, models.Channel(strings.TrimSpace(name)))
		}
	}

	observations, err := seriesio.ReadFile(*input, seriesio.ReadOptions{TimeColumn: "Time"})
	if err != nil {
		logger.Fatal(ctx, "[EXTRACT_READ_ERROR] Failed to read input file", logging.Fields{
			"input": *input,
		}, err)
	}

	series := &models.Series{Step: cfg.QC.Step, Observations: observations}

	extractor := services.NewExtractionService(logger, metricsCollector)
	window, selected, err := extractor.Extract(ctx, series, startTime, endTime, selection)
	if err != nil {
		logger.Fatal(ctx, "[EXTRACT_ERROR] Extraction failed", logging.Fields{
			"start": *start,
			"end":   *end,
		}, err)
	}

	writeOpts := seriesio.WriteOptions{Precision: 1, Channels: selected}
	if err := seriesio.WriteFile(*output, window, writeOpts); err != nil {
		logger.Fatal(ctx, "[EXTRACT_WRITE_ERROR] Failed to write output", logging.Fields{
			"output": *output,
		}, err)
	}

	fmt.Printf("Extracted rows: %d\n", window.Len())
}

func parseWindowTime(value string) (time.Time, error) {
	t, err := time.Parse(windowLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected format %q: %w", windowLayout, err)
	}
	return t, nil
}
