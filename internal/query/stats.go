package query

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// Summary holds the headline numbers shown above the charts.
//
// MeanMagnitude and MeanMagnitudeError are taken over the whole table, not
// just Year. They are NaN when the table is empty; HasData reports that case.
// Rows without a reported magnitude error do not count toward its mean.
type Summary struct {
	Year               int
	Count              int
	MeanMagnitude      float64
	MeanMagnitudeError float64
	HasData            bool
}

// SummaryStats counts the events in year and averages magnitude and
// magnitude error across the table, rounded to two decimals.
func SummaryStats(table *models.EventTable, year int) Summary {
	s := Summary{
		Year:               year,
		MeanMagnitude:      math.NaN(),
		MeanMagnitudeError: math.NaN(),
	}
	if table.Len() == 0 {
		return s
	}

	mags := make([]float64, 0, table.Len())
	errs := make([]float64, 0, table.Len())
	table.Each(func(_ int, e models.Event) bool {
		if e.Year == year {
			s.Count++
		}
		mags = append(mags, e.Magnitude)
		if !math.IsNaN(e.MagnitudeError) {
			errs = append(errs, e.MagnitudeError)
		}
		return true
	})

	s.MeanMagnitude = round2(stat.Mean(mags, nil))
	if len(errs) > 0 {
		s.MeanMagnitudeError = round2(stat.Mean(errs, nil))
	}
	s.HasData = true
	return s
}

// MarshalJSON writes undefined means as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	type wire struct {
		Year               int      `json:"year"`
		Count              int      `json:"count"`
		MeanMagnitude      *float64 `json:"mean_magnitude"`
		MeanMagnitudeError *float64 `json:"mean_magnitude_error"`
	}
	return json.Marshal(wire{
		Year:               s.Year,
		Count:              s.Count,
		MeanMagnitude:      nullable(s.MeanMagnitude),
		MeanMagnitudeError: nullable(s.MeanMagnitudeError),
	})
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
