package wind

import (
	"math"
	"testing"

	"meteo-qc/internal/models"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name      string
		speed     float64
		direction float64
		wantU     float64
		wantV     float64
	}{
		// Wind from due north flows southward: no zonal component,
		// negative meridional component.
		{name: "from north", speed: 5.0, direction: 0.0, wantU: 0.0, wantV: -5.0},
		{name: "from east", speed: 5.0, direction: 90.0, wantU: -5.0, wantV: 0.0},
		{name: "from south", speed: 5.0, direction: 180.0, wantU: 0.0, wantV: 5.0},
		{name: "from west", speed: 5.0, direction: 270.0, wantU: 5.0, wantV: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := Decompose(tt.speed, tt.direction)
			if math.Abs(vec.U-tt.wantU) > 1e-9 {
				t.Errorf("U = %v, want %v", vec.U, tt.wantU)
			}
			if math.Abs(vec.V-tt.wantV) > 1e-9 {
				t.Errorf("V = %v, want %v", vec.V, tt.wantV)
			}
		})
	}
}

func TestVector_DirectionSingularities(t *testing.T) {
	tests := []struct {
		name string
		vec  Vector
		want float64
	}{
		{name: "meridional flow northward means wind from south", vec: Vector{U: 0, V: 5}, want: 180.0},
		{name: "meridional flow southward means wind from north", vec: Vector{U: 0, V: -5}, want: 0.0},
		{name: "calm air reports north by convention", vec: Vector{U: 0, V: 0}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vec.Direction(); got != tt.want {
				t.Errorf("Direction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVector_RoundTrip(t *testing.T) {
	directions := []float64{0, 22.5, 45, 90, 135, 180, 210, 225, 270, 315, 359}
	speed := 7.3

	for _, dir := range directions {
		vec := Decompose(speed, dir)

		if got := vec.Speed(); math.Abs(got-speed) > 1e-9 {
			t.Errorf("Speed() after Decompose(%v, %v) = %v, want %v", speed, dir, got, speed)
		}

		got := vec.Direction()
		diff := math.Abs(got - dir)
		if diff > 180 {
			diff = 360 - diff
		}
		if diff > 0.1 {
			t.Errorf("Direction() after Decompose(%v, %v) = %v, want within 0.1", speed, dir, got)
		}
	}
}

func TestVector_DirectionStaysInRange(t *testing.T) {
	// Directions just under 360 must not round up out of range.
	for _, dir := range []float64{359.9, 359.99, 0.01} {
		vec := Decompose(4.0, dir)
		got := vec.Direction()
		if got < 0 || got >= 360 {
			t.Errorf("Direction() for input %v = %v, want value in [0, 360)", dir, got)
		}
	}
}

func TestVector_Speed(t *testing.T) {
	vec := Vector{U: 3, V: 4}
	if got := vec.Speed(); got != 5.0 {
		t.Errorf("Speed() = %v, want 5.0", got)
	}
}

func TestDecomposeObservation(t *testing.T) {
	tests := []struct {
		name   string
		obs    models.Observation
		wantOK bool
	}{
		{
			name:   "complete wind pair",
			obs:    models.Observation{WindSpeed: models.Float(5.0), WindDirection: models.Float(90.0)},
			wantOK: true,
		},
		{
			name:   "missing speed",
			obs:    models.Observation{WindDirection: models.Float(90.0)},
			wantOK: false,
		},
		{
			name:   "missing direction",
			obs:    models.Observation{WindSpeed: models.Float(5.0)},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec, ok := DecomposeObservation(&tt.obs)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(vec.U-(-5.0)) > 1e-9 {
				t.Errorf("U = %v, want -5.0", vec.U)
			}
		})
	}
}
