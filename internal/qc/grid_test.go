package qc

import (
	"testing"
	"time"

	"meteo-qc/internal/models"
)

func minuteObs(t time.Time, temp float64) models.Observation {
	return models.Observation{Timestamp: t, Temperature: models.Float(temp)}
}

func TestRegularize(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		raw         []models.Observation
		step        time.Duration
		wantErr     bool
		checkValues func(*testing.T, *models.Series)
	}{
		{
			name:    "zero step is a configuration error",
			raw:     []models.Observation{minuteObs(base, 10.0)},
			step:    0,
			wantErr: true,
		},
		{
			name:    "empty input has no time range",
			raw:     nil,
			step:    time.Minute,
			wantErr: true,
		},
		{
			name: "single observation yields a single-row grid",
			raw:  []models.Observation{minuteObs(base, 10.0)},
			step: time.Minute,
			checkValues: func(t *testing.T, s *models.Series) {
				if s.Len() != 1 {
					t.Fatalf("Len() = %d, want 1", s.Len())
				}
				if !s.Observations[0].Timestamp.Equal(base) {
					t.Errorf("Timestamp = %v, want %v", s.Observations[0].Timestamp, base)
				}
			},
		},
		{
			name: "gap becomes a fully missing row",
			raw: []models.Observation{
				minuteObs(base, 10.0),
				minuteObs(base.Add(2*time.Minute), 12.0),
			},
			step: time.Minute,
			checkValues: func(t *testing.T, s *models.Series) {
				if s.Len() != 3 {
					t.Fatalf("Len() = %d, want 3", s.Len())
				}
				if s.Observations[1].Temperature != nil {
					t.Error("gap row should have missing temperature")
				}
				if !s.Observations[1].Timestamp.Equal(base.Add(time.Minute)) {
					t.Errorf("gap Timestamp = %v, want %v", s.Observations[1].Timestamp, base.Add(time.Minute))
				}
			},
		},
		{
			name: "unordered input spans earliest to latest",
			raw: []models.Observation{
				minuteObs(base.Add(2*time.Minute), 12.0),
				minuteObs(base, 10.0),
			},
			step: time.Minute,
			checkValues: func(t *testing.T, s *models.Series) {
				if s.Len() != 3 {
					t.Fatalf("Len() = %d, want 3", s.Len())
				}
				if !s.Observations[0].Timestamp.Equal(base) {
					t.Errorf("first Timestamp = %v, want %v", s.Observations[0].Timestamp, base)
				}
			},
		},
		{
			name: "duplicate timestamps keep the first occurrence",
			raw: []models.Observation{
				minuteObs(base, 10.0),
				minuteObs(base, 99.0),
				minuteObs(base.Add(time.Minute), 11.0),
			},
			step: time.Minute,
			checkValues: func(t *testing.T, s *models.Series) {
				if s.Len() != 2 {
					t.Fatalf("Len() = %d, want 2", s.Len())
				}
				if s.Observations[0].Temperature == nil || *s.Observations[0].Temperature != 10.0 {
					t.Errorf("duplicate kept %v, want first value 10.0", s.Observations[0].Temperature)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := Regularize(tt.raw, tt.step)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Regularize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if series.Step != tt.step {
				t.Errorf("Step = %v, want %v", series.Step, tt.step)
			}
			if tt.checkValues != nil {
				tt.checkValues(t, series)
			}
		})
	}
}

func TestRegularize_GridIsStrictlyIncreasing(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := []models.Observation{
		minuteObs(base.Add(7*time.Minute), 1.0),
		minuteObs(base, 2.0),
		minuteObs(base.Add(3*time.Minute), 3.0),
		minuteObs(base.Add(3*time.Minute), 4.0),
	}

	series, err := Regularize(raw, time.Minute)
	if err != nil {
		t.Fatalf("Regularize() error = %v", err)
	}

	if series.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", series.Len())
	}
	for i := 1; i < series.Len(); i++ {
		gap := series.Observations[i].Timestamp.Sub(series.Observations[i-1].Timestamp)
		if gap != time.Minute {
			t.Errorf("gap at row %d = %v, want %v", i, gap, time.Minute)
		}
	}
}

func TestRecordMissingValues(t *testing.T) {
	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	raw := []models.Observation{
		minuteObs(base, 10.0),
		minuteObs(base.Add(2*time.Minute), 12.0),
	}

	series, err := Regularize(raw, time.Minute)
	if err != nil {
		t.Fatalf("Regularize() error = %v", err)
	}

	report := NewReport()
	RecordMissingValues(series, report)

	missing := report.MissingTimestamps()
	if len(missing) != 1 {
		t.Fatalf("missing findings = %d, want 1", len(missing))
	}
	if !missing[0].Equal(base.Add(time.Minute)) {
		t.Errorf("missing timestamp = %v, want %v", missing[0], base.Add(time.Minute))
	}
}
