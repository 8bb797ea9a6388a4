package wind

import (
	"math"

	"meteo-qc/internal/models"
)

// DefaultSectorCount splits the compass into 16 sectors of 22.5 degrees.
const DefaultSectorCount = 16

// DefaultSpeedBins are the lower edges of the speed classes in m/s; the
// last bin is open-ended.
var DefaultSpeedBins = []float64{0, 4, 8, 12, 16, 20}

// Rose is a direction-by-speed histogram of wind samples. Counts[s][b] is
// the number of samples in compass sector s and speed class b. Sectors are
// centered on their heading, so sector 0 covers due north plus/minus half a
// sector width. Rendering the histogram is a collaborator concern; this is
// the data contract it consumes.
type Rose struct {
	SectorCount int       `json:"sector_count"`
	SpeedBins   []float64 `json:"speed_bins"`
	Counts      [][]int   `json:"counts"`
}

// BuildRose tallies every sample with positive speed and a known direction.
// Calm samples (speed <= 0) carry no usable direction and are skipped.
func BuildRose(series *models.Series, sectors int, speedBins []float64) *Rose {
	rose := &Rose{
		SectorCount: sectors,
		SpeedBins:   speedBins,
		Counts:      make([][]int, sectors),
	}
	for i := range rose.Counts {
		rose.Counts[i] = make([]int, len(speedBins))
	}

	width := 360.0 / float64(sectors)
	for i := range series.Observations {
		obs := &series.Observations[i]
		if obs.WindSpeed == nil || obs.WindDirection == nil || *obs.WindSpeed <= 0 {
			continue
		}
		sector := int(math.Mod(*obs.WindDirection+width/2, 360.0)/width) % sectors
		rose.Counts[sector][binIndex(speedBins, *obs.WindSpeed)]++
	}
	return rose
}

// Total returns the number of samples tallied into the histogram.
func (r *Rose) Total() int {
	n := 0
	for _, sector := range r.Counts {
		for _, c := range sector {
			n += c
		}
	}
	return n
}

func binIndex(bins []float64, speed float64) int {
	idx := 0
	for i, edge := range bins {
		if speed >= edge {
			idx = i
		}
	}
	return idx
}
