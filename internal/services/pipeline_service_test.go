package services

import (
	"context"
	"io"
	"testing"
	"time"

	"meteo-qc/internal/models"
	"meteo-qc/internal/qc"
	"meteo-qc/pkg/logging"
	"meteo-qc/pkg/metrics"
)

// Shared across the package tests: prometheus collectors register globally,
// so building one per test would panic on duplicate registration.
var testMetrics = metrics.NewCollector("meteo_qc_test")

func testLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("test", "0.0.0", logging.ErrorLevel)
	logger.SetOutput(io.Discard)
	return logger
}

func TestPipelineService_RunQC(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	raw := []models.Observation{
		{
			Timestamp:     base,
			Temperature:   models.Float(20.0),
			Humidity:      models.Float(55.0),
			WindSpeed:     models.Float(4.0),
			WindDirection: models.Float(90.0),
			Battery:       models.Float(12.4),
		},
		// Minute 1 absent: becomes a missing-value finding.
		{
			Timestamp:   base.Add(2 * time.Minute),
			Temperature: models.Float(55.0), // implausible, gets nulled
			Humidity:    models.Float(54.0),
			Battery:     models.Float(12.4),
		},
		{
			Timestamp:   base.Add(3 * time.Minute),
			Temperature: models.Float(20.5),
			Humidity:    models.Float(70.0), // jump of 16 against minute 2
			Battery:     models.Float(12.4),
		},
	}

	svc := NewPipelineService(testLogger(), testMetrics)
	result, err := svc.RunQC(context.Background(), raw, RunOptions{Label: "2020"})
	if err != nil {
		t.Fatalf("RunQC() error = %v", err)
	}

	if result.Series.Len() != 4 {
		t.Fatalf("grid rows = %d, want 4", result.Series.Len())
	}

	// Minute 1 was never observed and minute 2 lost its temperature to the
	// range check, but only the grid gap counts as a missing-value finding.
	if n := result.Report.Count(qc.FindingMissingValue); n != 1 {
		t.Errorf("missing findings = %d, want 1", n)
	}

	if result.Series.Observations[2].Temperature != nil {
		t.Error("implausible temperature should be nulled")
	}
	if n := len(result.Report.OutOfRange(models.ChannelTemperature)); n != 1 {
		t.Errorf("out-of-range T findings = %d, want 1", n)
	}

	if n := len(result.Report.SteepGradients(models.ChannelHumidity)); n != 1 {
		t.Errorf("gradient phi findings = %d, want 1", n)
	}
	// The temperature gradient between minutes 2 and 3 must not fire: the
	// out-of-range value was nulled before the gradient stage.
	if n := len(result.Report.SteepGradients(models.ChannelTemperature)); n != 0 {
		t.Errorf("gradient T findings = %d, want 0", n)
	}

	if result.Rose == nil || result.Rose.Total() != 1 {
		t.Errorf("rose samples = %v, want 1", result.Rose)
	}

	if result.Monthly == nil || result.Monthly.Len() != 1 {
		t.Error("monthly aggregate should cover exactly one month")
	}
	if result.Annual == nil || result.Annual.Len() != 1 {
		t.Error("annual aggregate should cover exactly one year")
	}
}

func TestPipelineService_RunQC_Errors(t *testing.T) {
	svc := NewPipelineService(testLogger(), testMetrics)

	if _, err := svc.RunQC(context.Background(), nil, RunOptions{}); err == nil {
		t.Error("RunQC() should fail on empty input")
	}

	badSpecs := []models.ChannelSpec{{Name: models.ChannelTemperature, Min: 10, Max: -10}}
	raw := []models.Observation{{Timestamp: time.Now(), Temperature: models.Float(5)}}
	if _, err := svc.RunQC(context.Background(), raw, RunOptions{Specs: badSpecs}); err == nil {
		t.Error("RunQC() should fail on an inverted channel range")
	}
}
