package services

import (
	"context"
	"testing"
	"time"

	"meteo-qc/internal/models"
)

func TestExtractionService_Extract(t *testing.T) {
	base := time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC)
	series := &models.Series{Step: time.Minute}
	for i := 0; i < 10; i++ {
		series.Observations = append(series.Observations, models.Observation{
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Temperature: models.Float(float64(20 + i)),
		})
	}

	svc := NewExtractionService(testLogger(), testMetrics)

	tests := []struct {
		name        string
		start       time.Time
		end         time.Time
		channels    []models.Channel
		wantErr     bool
		checkValues func(*testing.T, *models.Series, []models.Channel)
	}{
		{
			name:  "inclusive window",
			start: base.Add(2 * time.Minute),
			end:   base.Add(5 * time.Minute),
			checkValues: func(t *testing.T, out *models.Series, channels []models.Channel) {
				if out.Len() != 4 {
					t.Fatalf("rows = %d, want 4 (both endpoints included)", out.Len())
				}
				if !out.Observations[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
					t.Errorf("first row = %v, want window start", out.Observations[0].Timestamp)
				}
				if len(channels) != len(models.Channels) {
					t.Errorf("nil selection should expand to all %d channels", len(models.Channels))
				}
			},
		},
		{
			name:     "explicit channel subset passes validation",
			start:    base,
			end:      base.Add(time.Minute),
			channels: []models.Channel{models.ChannelTemperature, models.ChannelHumidity},
			checkValues: func(t *testing.T, out *models.Series, channels []models.Channel) {
				if len(channels) != 2 {
					t.Errorf("channels = %d, want 2", len(channels))
				}
			},
		},
		{
			name:  "window outside the series is empty",
			start: base.Add(-2 * time.Hour),
			end:   base.Add(-time.Hour),
			checkValues: func(t *testing.T, out *models.Series, channels []models.Channel) {
				if out.Len() != 0 {
					t.Errorf("rows = %d, want 0", out.Len())
				}
			},
		},
		{
			name:    "inverted window is a configuration error",
			start:   base.Add(time.Hour),
			end:     base,
			wantErr: true,
		},
		{
			name:     "unknown channel is a configuration error",
			start:    base,
			end:      base.Add(time.Minute),
			channels: []models.Channel{models.Channel("bogus")},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, channels, err := svc.Extract(context.Background(), series, tt.start, tt.end, tt.channels)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Extract() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if _, ok := err.(*models.ConfigurationError); !ok {
					t.Errorf("error type = %T, want *models.ConfigurationError", err)
				}
				return
			}
			tt.checkValues(t, out, channels)
		})
	}
}
