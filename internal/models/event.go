package models

import (
	"encoding/json"
	"math"
)

// Event is one recorded earthquake. MagnitudeError is NaN when the source
// did not report one.
type Event struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	Magnitude      float64 `json:"magnitude"`
	MagnitudeError float64 `json:"magnitude_error"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// MarshalJSON writes a missing magnitude error as null.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	var magErr *float64
	if !math.IsNaN(e.MagnitudeError) {
		magErr = &e.MagnitudeError
	}
	return json.Marshal(struct {
		plain
		MagnitudeError *float64 `json:"magnitude_error"`
	}{plain(e), magErr})
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (e Event) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	}
}

// Year bounds accepted by Valid.
const (
	MinYear = 1
	MaxYear = 9999
)

// Valid reports whether the event's year, month and coordinates are in range.
func (e Event) Valid() bool {
	if e.Year < MinYear || e.Year > MaxYear {
		return false
	}
	if e.Month < 1 || e.Month > 12 {
		return false
	}
	if e.Latitude < -90 || e.Latitude > 90 {
		return false
	}
	return e.Longitude >= -180 && e.Longitude <= 180
}

// EventTable is a read-only, ordered set of events. Derivations such as
// Filter return a new table and leave the receiver untouched, so a single
// table can be shared between concurrent readers.
type EventTable struct {
	events []Event
}

// NewEventTable copies events into a new table.
func NewEventTable(events []Event) *EventTable {
	cp := make([]Event, len(events))
	copy(cp, events)
	return &EventTable{events: cp}
}

func (t *EventTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.events)
}

func (t *EventTable) At(i int) Event {
	return t.events[i]
}

// Events returns a copy of the rows in table order.
func (t *EventTable) Events() []Event {
	if t == nil {
		return nil
	}
	cp := make([]Event, len(t.events))
	copy(cp, t.events)
	return cp
}

// Each calls fn for every row in order until fn returns false.
func (t *EventTable) Each(fn func(i int, e Event) bool) {
	if t == nil {
		return
	}
	for i, e := range t.events {
		if !fn(i, e) {
			return
		}
	}
}

// Filter returns the rows for which keep returns true, preserving order.
func (t *EventTable) Filter(keep func(Event) bool) *EventTable {
	out := &EventTable{events: []Event{}}
	t.Each(func(_ int, e Event) bool {
		if keep(e) {
			out.events = append(out.events, e)
		}
		return true
	})
	return out
}

// YearRange returns the smallest and largest year present. ok is false for
// an empty table.
func (t *EventTable) YearRange() (lo, hi int, ok bool) {
	if t.Len() == 0 {
		return 0, 0, false
	}
	lo, hi = t.events[0].Year, t.events[0].Year
	for _, e := range t.events[1:] {
		lo = min(lo, e.Year)
		hi = max(hi, e.Year)
	}
	return lo, hi, true
}

// MagnitudeRange returns the smallest and largest magnitude present.
func (t *EventTable) MagnitudeRange() (lo, hi float64, ok bool) {
	if t.Len() == 0 {
		return 0, 0, false
	}
	lo, hi = t.events[0].Magnitude, t.events[0].Magnitude
	for _, e := range t.events[1:] {
		lo = min(lo, e.Magnitude)
		hi = max(hi, e.Magnitude)
	}
	return lo, hi, true
}
