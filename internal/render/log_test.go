package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"meteo-qc/internal/models"
	"meteo-qc/internal/qc"
)

func TestWriteLog(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	series := &models.Series{
		Step: time.Minute,
		Observations: []models.Observation{
			{Timestamp: base, Temperature: models.Float(20.0)},
			{Timestamp: base.Add(time.Minute)},
			{Timestamp: base.Add(2 * time.Minute), Temperature: models.Float(21.0)},
			{Timestamp: base.Add(3 * time.Minute), Temperature: models.Float(22.0)},
		},
	}

	report := qc.NewReport()
	report.AddMissingValue(base.Add(time.Minute))
	report.AddOutOfRange(models.ChannelTemperature, base.Add(2*time.Minute), 55.0)
	report.AddSteepGradient(models.ChannelTemperature, base.Add(3*time.Minute), 4.5)

	monthly := &models.Series{
		Observations: []models.Observation{
			{
				Timestamp:     time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
				Temperature:   models.Float(21.0),
				Precipitation: models.Float(12.5),
				WindSpeed:     models.Float(3.2),
				WindDirection: models.Float(270.0),
			},
		},
	}
	annual := &models.Series{
		Observations: []models.Observation{
			{
				Timestamp:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				Temperature:   models.Float(21.0),
				Precipitation: models.Float(12.5),
			},
		},
	}

	var buf bytes.Buffer
	err := WriteLog(&buf, LogInput{
		Label:      "2020",
		Series:     series,
		Report:     report,
		Specs:      models.DefaultChannelSpecs(),
		Monthly:    monthly,
		Annual:     annual,
		Thresholds: qc.DefaultGradientThresholds,
	})
	if err != nil {
		t.Fatalf("WriteLog() error = %v", err)
	}
	out := buf.String()

	// Sections appear in fixed order.
	sections := []string{
		"Year 2020",
		"Missing values",
		"2020-06-01 00:01:00",
		"1 missing values over a total of",
		"Plausible out-of-range Temperature values",
		"2020-06-01 00:02:00  55.0",
		"Steep T gradients",
		"2020-06-01 00:03:00  4.5",
		"T averages",
		"Wind speed and direction averages",
		"Precipitation sums",
	}
	pos := -1
	for _, section := range sections {
		idx := strings.Index(out, section)
		if idx < 0 {
			t.Fatalf("log output missing %q\n---\n%s", section, out)
		}
		if idx < pos {
			t.Errorf("section %q out of order", section)
		}
		pos = idx
	}

	if !strings.Contains(out, "25.00 %") {
		t.Errorf("missing ratio not rendered, output:\n%s", out)
	}
	if !strings.Contains(out, "3.2 m/s") && !strings.Contains(out, "3.20 m/s") {
		t.Errorf("wind summary not rendered, output:\n%s", out)
	}
}

func TestWriteLog_SkipsAggregatesWhenAbsent(t *testing.T) {
	series := &models.Series{
		Step: time.Minute,
		Observations: []models.Observation{
			{Timestamp: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), Temperature: models.Float(20.0)},
		},
	}

	var buf bytes.Buffer
	err := WriteLog(&buf, LogInput{
		Label:      "2020",
		Series:     series,
		Report:     qc.NewReport(),
		Specs:      models.DefaultChannelSpecs(),
		Thresholds: qc.DefaultGradientThresholds,
	})
	if err != nil {
		t.Fatalf("WriteLog() error = %v", err)
	}

	if strings.Contains(buf.String(), "Monthly averages") {
		t.Error("aggregate sections should be skipped without aggregate series")
	}
}
