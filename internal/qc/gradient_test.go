package qc

import (
	"testing"
	"time"

	"meteo-qc/internal/models"
)

func temperatureSeries(base time.Time, values []*float64) *models.Series {
	series := &models.Series{Step: time.Minute}
	for i, v := range values {
		series.Observations = append(series.Observations, models.Observation{
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Temperature: v,
		})
	}
	return series
}

func TestCheckGradients(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	thresholds := map[models.Channel]float64{models.ChannelTemperature: 3.0}

	tests := []struct {
		name        string
		values      []*float64
		checkValues func(*testing.T, *Report)
	}{
		{
			name:   "steps at or above the threshold are flagged",
			values: []*float64{models.Float(10.0), models.Float(15.0), models.Float(12.0)},
			checkValues: func(t *testing.T, report *Report) {
				findings := report.SteepGradients(models.ChannelTemperature)
				if len(findings) != 2 {
					t.Fatalf("gradient findings = %d, want 2", len(findings))
				}
				if findings[0].Value != 5.0 {
					t.Errorf("first magnitude = %v, want 5.0", findings[0].Value)
				}
				if !findings[0].Timestamp.Equal(base.Add(time.Minute)) {
					t.Errorf("first timestamp = %v, want the later sample %v", findings[0].Timestamp, base.Add(time.Minute))
				}
				if findings[1].Value != 3.0 {
					t.Errorf("second magnitude = %v, want 3.0 (threshold is inclusive)", findings[1].Value)
				}
			},
		},
		{
			name:   "steps below the threshold pass",
			values: []*float64{models.Float(10.0), models.Float(12.9), models.Float(10.5)},
			checkValues: func(t *testing.T, report *Report) {
				if n := len(report.SteepGradients(models.ChannelTemperature)); n != 0 {
					t.Errorf("gradient findings = %d, want 0", n)
				}
			},
		},
		{
			name:   "a missing row breaks adjacency",
			values: []*float64{models.Float(10.0), nil, models.Float(20.0)},
			checkValues: func(t *testing.T, report *Report) {
				if n := len(report.SteepGradients(models.ChannelTemperature)); n != 0 {
					t.Errorf("gradient findings across a gap = %d, want 0", n)
				}
			},
		},
		{
			name:   "single sample has no gradient",
			values: []*float64{models.Float(10.0)},
			checkValues: func(t *testing.T, report *Report) {
				if n := len(report.Findings()); n != 0 {
					t.Errorf("findings = %d, want 0", n)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := temperatureSeries(base, tt.values)
			report := NewReport()
			CheckGradients(series, thresholds, report)
			tt.checkValues(t, report)
		})
	}
}

func TestCheckGradients_UncheckedChannelsAreIgnored(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	series := &models.Series{
		Step: time.Minute,
		Observations: []models.Observation{
			{Timestamp: base, Pressure: models.Float(980.0)},
			{Timestamp: base.Add(time.Minute), Pressure: models.Float(1020.0)},
		},
	}

	report := NewReport()
	CheckGradients(series, DefaultGradientThresholds, report)

	if n := len(report.Findings()); n != 0 {
		t.Errorf("findings for unchecked channel = %d, want 0", n)
	}
}

func TestDefaultGradientThresholds(t *testing.T) {
	want := map[models.Channel]float64{
		models.ChannelTemperature: 3.0,
		models.ChannelHumidity:    10.0,
		models.ChannelWindSpeed:   20.0,
	}
	for ch, limit := range want {
		if got := DefaultGradientThresholds[ch]; got != limit {
			t.Errorf("threshold for %s = %v, want %v", ch, got, limit)
		}
	}
	if len(DefaultGradientThresholds) != len(want) {
		t.Errorf("threshold count = %d, want %d", len(DefaultGradientThresholds), len(want))
	}
}
