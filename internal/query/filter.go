package query

import "github.com/mr1hm/go-quake-dashboard/internal/models"

// FilterEvents returns the coordinates of events in the given month and
// year whose magnitude is at least minMagnitude. A non-nil region narrows
// the table to its bounding box before the other predicates are applied.
// The result is never nil.
func FilterEvents(table *models.EventTable, month, year int, minMagnitude float64, region *models.Region) []models.Coordinates {
	if region != nil {
		table = region.Apply(table)
	}

	coords := []models.Coordinates{}
	table.Each(func(_ int, e models.Event) bool {
		if e.Month == month && e.Year == year && e.Magnitude >= minMagnitude {
			coords = append(coords, e.Coordinates())
		}
		return true
	})
	return coords
}
