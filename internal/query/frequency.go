package query

import (
	"slices"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// YearlyFrequency counts events per year, ascending. Only years that
// appear in the table are reported; missing years are not zero-filled.
func YearlyFrequency(table *models.EventTable) []YearCount {
	counts := make(map[int]int)
	table.Each(func(_ int, e models.Event) bool {
		counts[e.Year]++
		return true
	})

	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	slices.SortFunc(out, func(a, b YearCount) int {
		return a.Year - b.Year
	})
	return out
}
