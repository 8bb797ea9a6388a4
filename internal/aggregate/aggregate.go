// Package aggregate resamples a regular observation series to coarser
// periods. Instantaneous scalar channels take the arithmetic mean of the
// non-missing samples in each period; precipitation is summed with missing
// samples counted as zero; wind speed and direction are averaged through
// their zonal/meridional components so circular wrap-around is handled
// correctly.
package aggregate

import (
	"time"

	"meteo-qc/internal/models"
	"meteo-qc/internal/wind"
)

// Period selects the resampling target.
type Period string

const (
	PeriodHour  Period = "hour"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// scalarChannels are averaged arithmetically per period.
var scalarChannels = []models.Channel{
	models.ChannelTemperature,
	models.ChannelHumidity,
	models.ChannelPressure,
	models.ChannelWindGust,
	models.ChannelBattery,
}

// bucket accumulates one output period.
type bucket struct {
	sum    map[models.Channel]float64
	count  map[models.Channel]int
	precip float64
	rows   int
	windU  float64
	windV  float64
	windN  int
}

func newBucket() *bucket {
	return &bucket{
		sum:   make(map[models.Channel]float64),
		count: make(map[models.Channel]int),
	}
}

// Resample reduces the series to one observation per period. The output
// index is contiguous over [start period, end period]: a period with no
// samples at all yields a fully missing row rather than an omitted one.
//
// Missing handling per channel class: a scalar mean over zero non-missing
// samples is missing; the precipitation sum treats missing samples as "no
// rain recorded" and an all-missing period sums to 0, a deliberate modeling
// choice inherited from the station's processing conventions; a wind mean
// over zero complete (speed, direction) pairs is missing.
func Resample(series *models.Series, period Period) (*models.Series, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	if series.Len() == 0 {
		return nil, &models.ConfigurationError{
			Parameter: "input",
			Message:   "cannot resample an empty series",
		}
	}

	buckets := make(map[time.Time]*bucket)
	for i := range series.Observations {
		obs := &series.Observations[i]
		key := truncate(obs.Timestamp, period)
		b, ok := buckets[key]
		if !ok {
			b = newBucket()
			buckets[key] = b
		}
		b.add(obs)
	}

	first := truncate(series.Observations[0].Timestamp, period)
	last := truncate(series.Observations[series.Len()-1].Timestamp, period)

	out := &models.Series{Step: outputStep(period)}
	for ts := first; !ts.After(last); ts = next(ts, period) {
		if b, ok := buckets[ts]; ok {
			out.Observations = append(out.Observations, b.observation(ts))
		} else {
			out.Observations = append(out.Observations, models.Observation{Timestamp: ts})
		}
	}
	return out, nil
}

func (b *bucket) add(obs *models.Observation) {
	b.rows++
	for _, ch := range scalarChannels {
		if v := obs.Value(ch); v != nil {
			b.sum[ch] += *v
			b.count[ch]++
		}
	}
	if obs.Precipitation != nil {
		b.precip += *obs.Precipitation
	}
	if vec, ok := wind.DecomposeObservation(obs); ok {
		b.windU += vec.U
		b.windV += vec.V
		b.windN++
	}
}

func (b *bucket) observation(ts time.Time) models.Observation {
	obs := models.Observation{Timestamp: ts}
	for _, ch := range scalarChannels {
		if n := b.count[ch]; n > 0 {
			obs.SetValue(ch, models.Float(b.sum[ch]/float64(n)))
		}
	}
	obs.Precipitation = models.Float(b.precip)
	if b.windN > 0 {
		mean := wind.Vector{
			U: b.windU / float64(b.windN),
			V: b.windV / float64(b.windN),
		}
		obs.WindSpeed = models.Float(mean.Speed())
		obs.WindDirection = models.Float(mean.Direction())
	}
	return obs
}

func validatePeriod(period Period) error {
	switch period {
	case PeriodHour, PeriodMonth, PeriodYear:
		return nil
	}
	return &models.ConfigurationError{
		Parameter: "period",
		Message:   "unsupported aggregation period " + string(period),
	}
}

// truncate maps a timestamp to the start of its period.
func truncate(ts time.Time, period Period) time.Time {
	switch period {
	case PeriodHour:
		return ts.Truncate(time.Hour)
	case PeriodMonth:
		return time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, ts.Location())
	default:
		return time.Date(ts.Year(), 1, 1, 0, 0, 0, 0, ts.Location())
	}
}

func next(ts time.Time, period Period) time.Time {
	switch period {
	case PeriodHour:
		return ts.Add(time.Hour)
	case PeriodMonth:
		return ts.AddDate(0, 1, 0)
	default:
		return ts.AddDate(1, 0, 0)
	}
}

// outputStep reports the grid step of the aggregate. Calendar periods have
// no constant duration, so monthly and annual series carry step 0.
func outputStep(period Period) time.Duration {
	if period == PeriodHour {
		return time.Hour
	}
	return 0
}
