package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestEventTable_IsImmutable(t *testing.T) {
	src := []Event{{Year: 2020, Month: 1, Magnitude: 3.0}}
	table := NewEventTable(src)

	src[0].Magnitude = 9.9
	if table.At(0).Magnitude != 3.0 {
		t.Error("table changed when source slice was modified")
	}

	rows := table.Events()
	rows[0].Magnitude = 9.9
	if table.At(0).Magnitude != 3.0 {
		t.Error("table changed when returned slice was modified")
	}
}

func TestEventTable_NilAndEmpty(t *testing.T) {
	var nilTable *EventTable
	if nilTable.Len() != 0 {
		t.Errorf("expected 0 rows, got %d", nilTable.Len())
	}
	if _, _, ok := NewEventTable(nil).YearRange(); ok {
		t.Error("expected no year range for empty table")
	}
	if got := nilTable.Filter(func(Event) bool { return true }); got.Len() != 0 {
		t.Errorf("expected empty filter result, got %d", got.Len())
	}
}

func TestEvent_Valid(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"ok", Event{Year: 2021, Month: 6, Latitude: 45, Longitude: -120}, true},
		{"year zero", Event{Year: 0, Month: 6}, false},
		{"year too large", Event{Year: MaxYear + 1, Month: 6}, false},
		{"negative year", Event{Year: math.MinInt64, Month: 6}, false},
		{"month zero", Event{Year: 2021, Month: 0}, false},
		{"month thirteen", Event{Year: 2021, Month: 13}, false},
		{"latitude", Event{Year: 2021, Month: 1, Latitude: 91}, false},
		{"longitude", Event{Year: 2021, Month: 1, Longitude: -181}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Valid(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRegion_Oregon(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{44.0, -123.0, true},
		{42.0, -135.0, true},
		{46.5, -116.4, true},
		{41.99, -123.0, false},
		{44.0, -116.3, false},
		{44.0, -135.1, false},
	}
	for _, tt := range tests {
		if got := Oregon.Contains(tt.lat, tt.lon); got != tt.want {
			t.Errorf("Contains(%v, %v): expected %v, got %v", tt.lat, tt.lon, tt.want, got)
		}
	}
}

func TestLookupRegion(t *testing.T) {
	if r, ok := LookupRegion(""); !ok || r != nil {
		t.Errorf("expected no region for empty name, got %v %v", r, ok)
	}
	if r, ok := LookupRegion("Oregon"); !ok || r == nil || r.Name != "oregon" {
		t.Errorf("expected Oregon, got %v %v", r, ok)
	}
	if _, ok := LookupRegion("atlantis"); ok {
		t.Error("expected unknown region to fail")
	}
}

func TestRegion_DisplayName(t *testing.T) {
	if got := Oregon.DisplayName(); got != "Oregon" {
		t.Errorf("expected Oregon, got %q", got)
	}
	if got := (Region{}).DisplayName(); got != "" {
		t.Errorf("expected empty name, got %q", got)
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{"March", 3, true},
		{"march", 3, true},
		{"Dec", 12, true},
		{"0", 0, false},
		{"13", 0, false},
		{"Ma", 0, false},
		{"Smarch", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseMonth(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMonth(%q): expected %d %v, got %d %v", tt.in, tt.want, tt.wantOK, got, ok)
		}
	}
}

func TestEvent_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Event{Year: 2021, Month: 3, Magnitude: 4.5, MagnitudeError: math.NaN(), Latitude: 44, Longitude: -124})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"year":2021,"month":3,"magnitude":4.5,"latitude":44,"longitude":-124,"magnitude_error":null}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}
