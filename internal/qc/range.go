package qc

import (
	"meteo-qc/internal/models"
)

// DefaultBatteryFloor is the logger supply voltage below which sensor
// readings are considered unreliable.
const DefaultBatteryFloor = 9.0

// RangeValidator nulls implausible readings. Per timestamp and channel:
// a battery voltage below the floor invalidates the reading outright
// (low-power readings are unreliable, not reported); otherwise a reading
// outside the channel's inclusive [min, max] range is recorded as an
// out-of-range finding and then nulled.
//
// Battery voltage itself is range-checked but never nulled and never gated
// by its own rule, so the gate input stays observable in the output.
type RangeValidator struct {
	specs        []models.ChannelSpec
	batteryFloor float64
}

// NewRangeValidator builds a validator over the given channel specs.
// A spec with min > max is a configuration error.
func NewRangeValidator(specs []models.ChannelSpec, batteryFloor float64) (*RangeValidator, error) {
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}
	return &RangeValidator{specs: specs, batteryFloor: batteryFloor}, nil
}

// Apply validates the series in place, appending findings to the report.
// Applying twice is equivalent to applying once.
func (v *RangeValidator) Apply(series *models.Series, report *Report) {
	for i := range series.Observations {
		obs := &series.Observations[i]
		lowPower := obs.Battery != nil && *obs.Battery < v.batteryFloor

		for _, spec := range v.specs {
			value := obs.Value(spec.Name)
			if value == nil {
				continue
			}

			if spec.Name == models.ChannelBattery {
				// Check-only: an implausible gate reading is worth a
				// finding, but nulling it would hide the gate signal.
				if *value < spec.Min || *value > spec.Max {
					report.AddOutOfRange(spec.Name, obs.Timestamp, *value)
				}
				continue
			}

			if lowPower {
				obs.SetValue(spec.Name, nil)
				continue
			}

			if *value < spec.Min || *value > spec.Max {
				report.AddOutOfRange(spec.Name, obs.Timestamp, *value)
				obs.SetValue(spec.Name, nil)
			}
		}
	}
}
