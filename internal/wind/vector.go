// Package wind converts between polar wind observations and zonal/meridional
// components. Direction follows the meteorological convention: degrees
// clockwise from north, naming where the wind blows from. Averaging wind
// direction arithmetically is wrong under wrap-around (359 and 1 degrees
// average to north, not south), so aggregation goes through the component
// representation and back.
package wind

import (
	"math"

	"meteo-qc/internal/models"
)

const degToRad = math.Pi / 180.0

// Vector holds the zonal (u, toward east) and meridional (v, toward north)
// wind components of a single observation or of an aggregate mean.
type Vector struct {
	U float64
	V float64
}

// Decompose converts speed and direction to components.
func Decompose(speed, direction float64) Vector {
	return Vector{
		U: -speed * math.Sin(direction*degToRad),
		V: -speed * math.Cos(direction*degToRad),
	}
}

// DecomposeObservation converts the wind channels of one observation.
// A missing speed or direction yields no vector.
func DecomposeObservation(obs *models.Observation) (Vector, bool) {
	if obs.WindSpeed == nil || obs.WindDirection == nil {
		return Vector{}, false
	}
	return Decompose(*obs.WindSpeed, *obs.WindDirection), true
}

// Speed reconstructs the wind speed magnitude from components.
func (w Vector) Speed() float64 {
	return math.Sqrt(w.U*w.U + w.V*w.V)
}

// Direction reconstructs the meteorological direction from components,
// rounded to one decimal place, always in [0, 360).
//
// The quadrant is resolved by the sign of u. The u == 0 singularity of the
// arctangent form is resolved by its geometric limit: wind along the
// meridian blows from due north (v < 0) or due south (v > 0). Calm air
// (u == v == 0) has no direction; 0 is reported by convention.
func (w Vector) Direction() float64 {
	var dir float64
	switch {
	case w.U == 0 && w.V > 0:
		dir = 180.0
	case w.U == 0:
		dir = 0.0
	case w.U > 0:
		dir = 90.0 - math.Atan(w.V/w.U)/degToRad + 180.0
	default:
		dir = 90.0 - math.Atan(w.V/w.U)/degToRad
	}

	dir = math.Round(dir*10) / 10
	if dir >= 360.0 {
		dir -= 360.0
	}
	return dir
}
