package services

import (
	"context"
	"time"

	"meteo-qc/internal/models"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

// ExtractionService slices a quality-controlled series to a time window
// and a channel subset for downstream analysis.
type ExtractionService struct {
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewExtractionService creates a new extraction service
func NewExtractionService(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *ExtractionService {
	return &ExtractionService{
		logger:  logger,
		metrics: metricsCollector,
	}
}

// Extract returns the rows of series inside [start, end] inclusive and the
// validated channel selection. An inverted window or an unknown channel is
// a configuration error. Nil channels selects every channel.
func (s *ExtractionService) Extract(ctx context.Context, series *models.Series, start, end time.Time, channels []models.Channel) (*models.Series, []models.Channel, error) {
	if start.After(end) {
		return nil, nil, &models.ConfigurationError{
			Parameter: "time range",
			Message:   "start is after end",
		}
	}

	if channels == nil {
		channels = models.Channels
	}
	for _, ch := range channels {
		if !knownChannel(ch) {
			return nil, nil, &models.ConfigurationError{
				Parameter: "channels",
				Message:   "unknown channel " + string(ch),
			}
		}
	}

	stageStart := time.Now()
	out := &models.Series{Step: series.Step}
	for i := range series.Observations {
		ts := series.Observations[i].Timestamp
		if ts.Before(start) || ts.After(end) {
			continue
		}
		out.Observations = append(out.Observations, series.Observations[i])
	}
	s.metrics.ObserveStage("extract", time.Since(stageStart))

	s.logger.Info(ctx, "[EXTRACT] Window extracted", logging.Fields{
		"start":    start.Format(time.RFC3339),
		"end":      end.Format(time.RFC3339),
		"rows_in":  series.Len(),
		"rows_out": out.Len(),
		"channels": len(channels),
	})

	return out, channels, nil
}

func knownChannel(ch models.Channel) bool {
	for _, known := range models.Channels {
		if ch == known {
			return true
		}
	}
	return false
}
