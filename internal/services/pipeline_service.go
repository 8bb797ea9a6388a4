package services

import (
	"context"
	"time"

	"meteo-qc/internal/aggregate"
	"meteo-qc/internal/models"
	"meteo-qc/internal/qc"
	"meteo-qc/internal/wind"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

// PipelineService runs the quality-control pipeline over one year of raw
// observations: regularization, range validation, gradient checks, the
// wind-rose histogram, and the monthly/annual aggregates for the log.
// Each run owns its series and report exclusively; the service itself is
// stateless.
type PipelineService struct {
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// RunOptions configures a quality-control run. Zero values select the
// station defaults.
type RunOptions struct {
	Label              string
	StationID          string
	Step               time.Duration
	Specs              []models.ChannelSpec
	BatteryFloor       float64
	GradientThresholds map[models.Channel]float64
	RoseSectors        int
	RoseSpeedBins      []float64
}

func (o RunOptions) withDefaults() RunOptions {
	if o.Step == 0 {
		o.Step = qc.DefaultStep
	}
	if o.Specs == nil {
		o.Specs = models.DefaultChannelSpecs()
	}
	if o.BatteryFloor == 0 {
		o.BatteryFloor = qc.DefaultBatteryFloor
	}
	if o.GradientThresholds == nil {
		o.GradientThresholds = qc.DefaultGradientThresholds
	}
	if o.RoseSectors == 0 {
		o.RoseSectors = wind.DefaultSectorCount
	}
	if o.RoseSpeedBins == nil {
		o.RoseSpeedBins = wind.DefaultSpeedBins
	}
	return o
}

// RunResult holds the outputs of one quality-control run.
type RunResult struct {
	Series   *models.Series
	Report   *qc.Report
	Rose     *wind.Rose
	Monthly  *models.Series
	Annual   *models.Series
	Duration time.Duration
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *PipelineService {
	return &PipelineService{
		logger:  logger,
		metrics: metricsCollector,
	}
}

// RunQC executes the full quality-control pipeline on raw observations.
// Data-quality problems become report findings and never abort the run;
// only structural failures (no time range, bad configuration) return an
// error.
func (s *PipelineService) RunQC(ctx context.Context, raw []models.Observation, opts RunOptions) (*RunResult, error) {
	opts = opts.withDefaults()
	startTime := time.Now()

	s.logger.Info(ctx, "[QC_START] Starting quality-control run", logging.Fields{
		"label":         opts.Label,
		"station_id":    opts.StationID,
		"raw_records":   len(raw),
		"step":          opts.Step.String(),
		"battery_floor": opts.BatteryFloor,
		"stage":         "INITIALIZATION",
	})

	validator, err := qc.NewRangeValidator(opts.Specs, opts.BatteryFloor)
	if err != nil {
		return nil, err
	}

	report := qc.NewReport()

	// Regularize onto the fixed grid.
	stageStart := time.Now()
	series, err := qc.Regularize(raw, opts.Step)
	if err != nil {
		return nil, err
	}
	qc.RecordMissingValues(series, report)
	s.metrics.ObserveStage("regularize", time.Since(stageStart))

	missing := report.Count(qc.FindingMissingValue)
	s.metrics.MissingValueRatio.Observe(float64(missing) / float64(series.Len()))
	s.logger.Info(ctx, "[QC_GRID] Series regularized", logging.Fields{
		"grid_rows":      series.Len(),
		"missing_values": missing,
		"stage":          "REGULARIZATION",
	})

	// Null implausible readings.
	stageStart = time.Now()
	validator.Apply(series, report)
	s.metrics.ObserveStage("range_validation", time.Since(stageStart))

	s.logger.Info(ctx, "[QC_RANGE] Range validation completed", logging.Fields{
		"out_of_range": report.Count(qc.FindingOutOfRange),
		"stage":        "RANGE_VALIDATION",
	})

	// Flag steep steps on the cleaned series.
	stageStart = time.Now()
	qc.CheckGradients(series, opts.GradientThresholds, report)
	s.metrics.ObserveStage("gradient_check", time.Since(stageStart))

	// Wind-rose histogram over the cleaned series.
	stageStart = time.Now()
	rose := wind.BuildRose(series, opts.RoseSectors, opts.RoseSpeedBins)
	s.metrics.ObserveStage("wind_rose", time.Since(stageStart))

	// Monthly and annual aggregates for the log summaries.
	stageStart = time.Now()
	monthly, err := aggregate.Resample(series, aggregate.PeriodMonth)
	if err != nil {
		return nil, err
	}
	annual, err := aggregate.Resample(series, aggregate.PeriodYear)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveStage("aggregate", time.Since(stageStart))

	result := &RunResult{
		Series:   series,
		Report:   report,
		Rose:     rose,
		Monthly:  monthly,
		Annual:   annual,
		Duration: time.Since(startTime),
	}

	s.metrics.RunsTotal.Inc()
	s.metrics.RecordsProcessedTotal.Add(float64(series.Len()))
	s.metrics.RunDuration.Observe(result.Duration.Seconds())
	for _, f := range report.Findings() {
		s.metrics.RecordFinding(string(f.Kind), string(f.Channel))
	}

	s.logger.Info(ctx, "[QC_COMPLETE] Quality-control run completed", logging.Fields{
		"label":            opts.Label,
		"grid_rows":        series.Len(),
		"missing_values":   missing,
		"out_of_range":     report.Count(qc.FindingOutOfRange),
		"steep_gradients":  report.Count(qc.FindingSteepGradient),
		"rose_samples":     rose.Total(),
		"duration_seconds": result.Duration.Seconds(),
		"stage":            "COMPLETE",
	})

	return result, nil
}
