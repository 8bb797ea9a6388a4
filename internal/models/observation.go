package models

import (
	"time"
)

// Observation represents one timestamped row of station data.
// Missing channel values are represented as nil pointers, so a row can be
// partially valid without sentinel values leaking into arithmetic.
type Observation struct {
	Timestamp     time.Time `json:"timestamp" db:"observed_at"`
	Temperature   *float64  `json:"temperature,omitempty" db:"temperature"`
	Humidity      *float64  `json:"humidity,omitempty" db:"humidity"`
	WindSpeed     *float64  `json:"wind_speed,omitempty" db:"wind_speed"`
	WindDirection *float64  `json:"wind_direction,omitempty" db:"wind_direction"`
	WindGust      *float64  `json:"wind_gust,omitempty" db:"wind_gust"`
	Precipitation *float64  `json:"precipitation,omitempty" db:"precipitation"`
	Pressure      *float64  `json:"pressure,omitempty" db:"pressure"`
	Battery       *float64  `json:"battery,omitempty" db:"battery"`
}

// Value returns the value of the named channel, nil when missing or when
// the channel is unknown.
func (o *Observation) Value(ch Channel) *float64 {
	switch ch {
	case ChannelTemperature:
		return o.Temperature
	case ChannelHumidity:
		return o.Humidity
	case ChannelWindSpeed:
		return o.WindSpeed
	case ChannelWindDirection:
		return o.WindDirection
	case ChannelWindGust:
		return o.WindGust
	case ChannelPrecipitation:
		return o.Precipitation
	case ChannelPressure:
		return o.Pressure
	case ChannelBattery:
		return o.Battery
	}
	return nil
}

// SetValue assigns the named channel. Passing nil marks the value missing.
func (o *Observation) SetValue(ch Channel, v *float64) {
	switch ch {
	case ChannelTemperature:
		o.Temperature = v
	case ChannelHumidity:
		o.Humidity = v
	case ChannelWindSpeed:
		o.WindSpeed = v
	case ChannelWindDirection:
		o.WindDirection = v
	case ChannelWindGust:
		o.WindGust = v
	case ChannelPrecipitation:
		o.Precipitation = v
	case ChannelPressure:
		o.Pressure = v
	case ChannelBattery:
		o.Battery = v
	}
}

// Series is an ordered, fixed-frequency time series of observations.
// After regularization the timestamps are strictly increasing with constant
// Step and no duplicates. Calendar-period aggregates (monthly, annual) carry
// Step == 0 because their spacing is not a constant duration.
type Series struct {
	Step         time.Duration `json:"step"`
	Observations []Observation `json:"observations"`
}

// Len returns the number of rows in the series.
func (s *Series) Len() int {
	return len(s.Observations)
}

// Float is a convenience for building optional channel values.
func Float(v float64) *float64 {
	return &v
}
