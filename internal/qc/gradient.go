package qc

import (
	"math"

	"meteo-qc/internal/models"
)

// DefaultGradientThresholds holds the per-channel limits on the absolute
// difference between consecutive samples. A step of at least the threshold
// is flagged.
var DefaultGradientThresholds = map[models.Channel]float64{
	models.ChannelTemperature: 3.0,
	models.ChannelHumidity:    10.0,
	models.ChannelWindSpeed:   20.0,
}

// CheckGradients flags steep steps between adjacent samples of the checked
// channels. Only rows at consecutive grid positions with both values present
// count as adjacent: a missing row between two readings breaks adjacency, so
// gaps never produce spurious gradient events. The finding carries the
// timestamp of the later sample and the absolute step magnitude.
func CheckGradients(series *models.Series, thresholds map[models.Channel]float64, report *Report) {
	for _, ch := range models.Channels {
		limit, checked := thresholds[ch]
		if !checked {
			continue
		}
		for i := 1; i < len(series.Observations); i++ {
			prev := series.Observations[i-1].Value(ch)
			curr := series.Observations[i].Value(ch)
			if prev == nil || curr == nil {
				continue
			}
			delta := math.Abs(*curr - *prev)
			if delta >= limit {
				report.AddSteepGradient(ch, series.Observations[i].Timestamp, delta)
			}
		}
	}
}
