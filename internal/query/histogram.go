package query

import (
	"math"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

const DefaultHistogramBins = 30

// Bin is one histogram bucket covering [Lower, Upper). The last bucket
// also includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// MagnitudeHistogram splits [min, max] magnitude into equal-width bins.
// When every event has the same magnitude the range is widened by 0.5 on
// each side. An empty table yields no bins.
func MagnitudeHistogram(table *models.EventTable, bins int) []Bin {
	lo, hi, ok := table.MagnitudeRange()
	if !ok {
		return []Bin{}
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	table.Each(func(_ int, e models.Event) bool {
		i := int(math.Floor((e.Magnitude - lo) / width))
		i = min(max(i, 0), bins-1)
		out[i].Count++
		return true
	})
	return out
}
