package query

import "github.com/mr1hm/go-quake-dashboard/internal/models"

// Options describes the values a dashboard offers in its selectors for a
// given table.
type Options struct {
	Months       []string `json:"months"`
	Years        []int    `json:"years"`
	MinMagnitude int      `json:"min_magnitude"`
	MaxMagnitude int      `json:"max_magnitude"`
}

// SelectorOptions lists every year from the earliest to the latest in the
// table, and magnitude slider bounds truncated to whole numbers.
func SelectorOptions(table *models.EventTable) Options {
	opts := Options{
		Months: models.MonthNames(),
		Years:  []int{},
	}
	if lo, hi, ok := table.YearRange(); ok {
		for y := lo; y <= hi; y++ {
			opts.Years = append(opts.Years, y)
		}
	}
	if lo, hi, ok := table.MagnitudeRange(); ok {
		opts.MinMagnitude = int(lo)
		opts.MaxMagnitude = int(hi)
	}
	return opts
}

// LatestYear returns the last year present in the table, or 0.
func LatestYear(table *models.EventTable) int {
	_, hi, _ := table.YearRange()
	return hi
}
