package models

import "strings"

// Region is a latitude/longitude bounding box. Both bounds are inclusive.
type Region struct {
	Name   string  `json:"name"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Oregon covers the state and the offshore fault zone west of it.
var Oregon = Region{
	Name:   "oregon",
	MinLat: 42,
	MaxLat: 46.5,
	MinLon: -135,
	MaxLon: -116.4,
}

// DisplayName is Name with its first letter upper-cased, for chart titles.
func (r Region) DisplayName() string {
	if r.Name == "" {
		return r.Name
	}
	return strings.ToUpper(r.Name[:1]) + r.Name[1:]
}

func (r Region) Contains(lat, lon float64) bool {
	return lat >= r.MinLat && lat <= r.MaxLat && lon >= r.MinLon && lon <= r.MaxLon
}

// Apply returns the subset of t inside the box.
func (r Region) Apply(t *EventTable) *EventTable {
	return t.Filter(func(e Event) bool {
		return r.Contains(e.Latitude, e.Longitude)
	})
}

// LookupRegion resolves a region name. An empty name or "all" returns nil
// with ok true, meaning no restriction.
func LookupRegion(name string) (*Region, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "all", "us", "contiguous":
		return nil, true
	case "oregon", "or":
		r := Oregon
		return &r, true
	default:
		return nil, false
	}
}
