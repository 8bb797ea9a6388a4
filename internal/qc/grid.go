package qc

import (
	"time"

	"meteo-qc/internal/models"
)

// DefaultStep is the native sampling interval of the station logger.
const DefaultStep = time.Minute

// Regularize reindexes raw observations onto a fixed-frequency grid spanning
// the earliest to the latest input timestamp, inclusive. Input may be
// unordered and may contain duplicate timestamps; duplicates keep the first
// occurrence in input order and the rest are dropped silently (input
// hygiene, not a quality event). Grid slots with no matching input become
// fully missing rows.
//
// The result holds exactly (last-first)/step + 1 rows, strictly increasing,
// with no duplicates.
func Regularize(raw []models.Observation, step time.Duration) (*models.Series, error) {
	if step <= 0 {
		return nil, &models.ConfigurationError{
			Parameter: "step",
			Message:   "grid step must be positive",
		}
	}
	if len(raw) == 0 {
		return nil, &models.ConfigurationError{
			Parameter: "input",
			Message:   "cannot establish a time range from an empty series",
		}
	}

	// Keep-first deduplication, keyed on second resolution.
	byTime := make(map[int64]models.Observation, len(raw))
	first := raw[0].Timestamp
	last := raw[0].Timestamp
	for _, obs := range raw {
		key := obs.Timestamp.Unix()
		if _, seen := byTime[key]; !seen {
			byTime[key] = obs
		}
		if obs.Timestamp.Before(first) {
			first = obs.Timestamp
		}
		if obs.Timestamp.After(last) {
			last = obs.Timestamp
		}
	}

	n := int(last.Sub(first)/step) + 1
	series := &models.Series{
		Step:         step,
		Observations: make([]models.Observation, 0, n),
	}

	for ts := first; !ts.After(last); ts = ts.Add(step) {
		if obs, ok := byTime[ts.Unix()]; ok {
			obs.Timestamp = ts
			series.Observations = append(series.Observations, obs)
		} else {
			series.Observations = append(series.Observations, models.Observation{Timestamp: ts})
		}
	}

	return series, nil
}

// RecordMissingValues reports every grid row whose temperature channel is
// missing. Temperature availability is the canonical availability signal
// for the whole observation.
func RecordMissingValues(series *models.Series, report *Report) {
	for i := range series.Observations {
		if series.Observations[i].Temperature == nil {
			report.AddMissingValue(series.Observations[i].Timestamp)
		}
	}
}
