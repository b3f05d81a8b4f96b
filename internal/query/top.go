package query

import (
	"cmp"
	"slices"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// TopNByMagnitude returns up to n of the strongest events whose month lies
// in [startMonth, endMonth] and whose year lies in [startYear, endYear].
//
// The two ranges are applied independently, not as a calendar interval:
// March 2010 to June 2021 matches June 2010 and March 2015 but not
// January 2015. Ties keep table order.
func TopNByMagnitude(table *models.EventTable, startMonth, startYear, endMonth, endYear, n int) []models.Event {
	if n <= 0 {
		return []models.Event{}
	}

	matched := table.Filter(func(e models.Event) bool {
		return e.Month >= startMonth && e.Month <= endMonth &&
			e.Year >= startYear && e.Year <= endYear
	}).Events()

	slices.SortStableFunc(matched, func(a, b models.Event) int {
		return cmp.Compare(b.Magnitude, a.Magnitude)
	})

	if len(matched) > n {
		matched = matched[:n]
	}
	return matched
}
