package models

import "fmt"

// Channel identifies one named measurement channel of the station.
// The symbolic names match the column headers of the logger files.
type Channel string

const (
	ChannelTemperature   Channel = "T"
	ChannelHumidity      Channel = "phi"
	ChannelWindSpeed     Channel = "ws"
	ChannelWindDirection Channel = "wd"
	ChannelWindGust      Channel = "wg"
	ChannelPrecipitation Channel = "precip"
	ChannelPressure      Channel = "pres"
	ChannelBattery       Channel = "bat"
)

// Channels lists every channel in logger column order.
var Channels = []Channel{
	ChannelTemperature,
	ChannelHumidity,
	ChannelWindSpeed,
	ChannelWindDirection,
	ChannelWindGust,
	ChannelPrecipitation,
	ChannelPressure,
	ChannelBattery,
}

// ChannelSpec holds the static per-channel metadata: display alias and
// the inclusive plausible range used by quality control. Values outside
// [Min, Max] are treated as sensor faults.
type ChannelSpec struct {
	Name  Channel `json:"name"`
	Alias string  `json:"alias"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Validate checks the configuration invariant that the range is well formed.
func (c ChannelSpec) Validate() error {
	if c.Min > c.Max {
		return &ConfigurationError{
			Parameter: string(c.Name),
			Message:   fmt.Sprintf("invalid range [%g, %g]: min exceeds max", c.Min, c.Max),
		}
	}
	return nil
}

// DefaultChannelSpecs returns the plausible ranges of the station sensors
// per the WMO guidelines on AWS quality control procedures.
func DefaultChannelSpecs() []ChannelSpec {
	return []ChannelSpec{
		{Name: ChannelTemperature, Alias: "Temperature", Min: -2.0, Max: 41.0},
		{Name: ChannelHumidity, Alias: "Relative humidity", Min: 5.0, Max: 100.0},
		{Name: ChannelPrecipitation, Alias: "Precipitation", Min: 0.0, Max: 40.0},
		{Name: ChannelPressure, Alias: "Pressure", Min: 970.0, Max: 1030.0},
		{Name: ChannelBattery, Alias: "Battery voltage", Min: 8.5, Max: 15.0},
		{Name: ChannelWindSpeed, Alias: "Wind speed", Min: 0.0, Max: 75.0},
		{Name: ChannelWindGust, Alias: "Wind gust", Min: 0.0, Max: 75.0},
		{Name: ChannelWindDirection, Alias: "Wind direction", Min: 0.0, Max: 360.0},
	}
}

// ConfigurationError represents an invalid pipeline configuration.
// Configuration errors are fatal and abort the run before any processing.
type ConfigurationError struct {
	Parameter string
	Message   string
}

func (e *ConfigurationError) Error() string {
	if e.Parameter == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Parameter, e.Message)
}

// IsTransient returns false as configuration errors are permanent.
func (e *ConfigurationError) IsTransient() bool {
	return false
}
