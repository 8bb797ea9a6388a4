package services

import (
	"context"
	"fmt"
	"time"

	"meteo-qc/internal/models"
	"meteo-qc/internal/qc"
	"meteo-qc/internal/repository"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

// ArchiveService persists completed quality-control runs: the run record,
// its cleaned observation rows, and its findings.
type ArchiveService struct {
	repo    repository.ArchiveRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewArchiveService creates a new archive service
func NewArchiveService(repo repository.ArchiveRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *ArchiveService {
	return &ArchiveService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// ArchiveRun stores one completed run and returns its archive ID.
func (s *ArchiveService) ArchiveRun(ctx context.Context, result *RunResult, opts RunOptions, sourceFile string, startedAt time.Time) (int64, error) {
	run := &models.QCRun{
		StationID:       opts.StationID,
		Label:           opts.Label,
		SourceFile:      sourceFile,
		StepSeconds:     int(result.Series.Step / time.Second),
		TotalRows:       result.Series.Len(),
		MissingCount:    result.Report.Count(qc.FindingMissingValue),
		OutOfRangeCount: result.Report.Count(qc.FindingOutOfRange),
		GradientCount:   result.Report.Count(qc.FindingSteepGradient),
		StartedAt:       startedAt,
		CompletedAt:     startedAt.Add(result.Duration),
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.CreateRun(ctx, run); err != nil {
		return 0, fmt.Errorf("failed to archive run record: %w", err)
	}

	if err := s.repo.InsertObservationsBatch(ctx, run.ID, result.Series.Observations); err != nil {
		return 0, fmt.Errorf("failed to archive observations: %w", err)
	}

	if err := s.repo.InsertFindingsBatch(ctx, run.ID, result.Report.Findings()); err != nil {
		return 0, fmt.Errorf("failed to archive findings: %w", err)
	}

	s.logger.Info(ctx, "[ARCHIVE_COMPLETE] Run archived", logging.Fields{
		"run_id":      run.ID,
		"station_id":  run.StationID,
		"label":       run.Label,
		"total_rows":  run.TotalRows,
		"findings":    len(result.Report.Findings()),
		"source_file": sourceFile,
	})

	return run.ID, nil
}
