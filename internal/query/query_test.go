package query

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// scenarioTable is the three-row table used throughout the dashboard docs.
func scenarioTable() *models.EventTable {
	return models.NewEventTable([]models.Event{
		{Year: 2021, Month: 3, Magnitude: 4.5, MagnitudeError: 0.1, Latitude: 44.0, Longitude: -124.0},
		{Year: 2021, Month: 3, Magnitude: 2.0, MagnitudeError: 0.3, Latitude: 36.0, Longitude: -118.0},
		{Year: 2020, Month: 3, Magnitude: 6.0, MagnitudeError: 0.2, Latitude: 40.0, Longitude: -125.0},
	})
}

func mixedTable() *models.EventTable {
	return models.NewEventTable([]models.Event{
		{Year: 2010, Month: 1, Magnitude: 3.1, MagnitudeError: 0.2, Latitude: 44.5, Longitude: -130.0},
		{Year: 2010, Month: 6, Magnitude: 5.2, MagnitudeError: 0.1, Latitude: 34.0, Longitude: -117.0},
		{Year: 2012, Month: 3, Magnitude: 2.4, MagnitudeError: 0.3, Latitude: 45.0, Longitude: -120.0},
		{Year: 2015, Month: 3, Magnitude: 5.2, MagnitudeError: 0.2, Latitude: 38.0, Longitude: -122.0},
		{Year: 2015, Month: 1, Magnitude: 6.4, MagnitudeError: 0.4, Latitude: 46.0, Longitude: -125.5},
		{Year: 2021, Month: 6, Magnitude: 2.9, MagnitudeError: 0.1, Latitude: 43.0, Longitude: -127.0},
		{Year: 2021, Month: 8, Magnitude: 4.0, MagnitudeError: 0.2, Latitude: 37.0, Longitude: -97.0},
	})
}

func TestSummaryStats_Scenario(t *testing.T) {
	s := SummaryStats(scenarioTable(), 2021)

	if s.Count != 2 {
		t.Errorf("expected count 2, got %d", s.Count)
	}
	if s.MeanMagnitude != 4.17 {
		t.Errorf("expected mean magnitude 4.17, got %v", s.MeanMagnitude)
	}
	if s.MeanMagnitudeError != 0.2 {
		t.Errorf("expected mean error 0.2, got %v", s.MeanMagnitudeError)
	}
	if !s.HasData {
		t.Error("expected HasData for non-empty table")
	}
}

func TestSummaryStats_MeansIgnoreYear(t *testing.T) {
	table := scenarioTable()
	a := SummaryStats(table, 2021)
	b := SummaryStats(table, 1999)

	if b.Count != 0 {
		t.Errorf("expected count 0 for absent year, got %d", b.Count)
	}
	if a.MeanMagnitude != b.MeanMagnitude || a.MeanMagnitudeError != b.MeanMagnitudeError {
		t.Errorf("means should not depend on year: %+v vs %+v", a, b)
	}
}

func TestSummaryStats_CountMatchesRows(t *testing.T) {
	table := mixedTable()
	for _, year := range []int{2010, 2012, 2015, 2021, 2030} {
		want := 0
		for _, e := range table.Events() {
			if e.Year == year {
				want++
			}
		}
		if got := SummaryStats(table, year).Count; got != want {
			t.Errorf("year %d: expected count %d, got %d", year, want, got)
		}
	}
}

func TestSummaryStats_EmptyTable(t *testing.T) {
	s := SummaryStats(models.NewEventTable(nil), 2021)

	if s.Count != 0 {
		t.Errorf("expected count 0, got %d", s.Count)
	}
	if s.HasData {
		t.Error("expected HasData false for empty table")
	}
	if !math.IsNaN(s.MeanMagnitude) || !math.IsNaN(s.MeanMagnitudeError) {
		t.Errorf("expected NaN means, got %v and %v", s.MeanMagnitude, s.MeanMagnitudeError)
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"year":2021,"count":0,"mean_magnitude":null,"mean_magnitude_error":null}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}

func TestFilterEvents_Scenario(t *testing.T) {
	got := FilterEvents(scenarioTable(), 3, 2021, 3.0, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	want := models.Coordinates{Latitude: 44.0, Longitude: -124.0}
	if got[0] != want {
		t.Errorf("expected %+v, got %+v", want, got[0])
	}
}

func TestFilterEvents_NoMatchesIsEmpty(t *testing.T) {
	got := FilterEvents(scenarioTable(), 12, 1990, 0, nil)

	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestFilterEvents_RegionRestrictsFirst(t *testing.T) {
	table := mixedTable()
	region := models.Oregon

	got := FilterEvents(table, 1, 2010, 0, &region)
	if len(got) != 1 {
		t.Fatalf("expected 1 Oregon match, got %d", len(got))
	}
	for _, c := range got {
		if !region.Contains(c.Latitude, c.Longitude) {
			t.Errorf("coordinate %+v outside region", c)
		}
	}

	// Same month and year but outside the box.
	if got := FilterEvents(table, 6, 2010, 0, &region); len(got) != 0 {
		t.Errorf("expected no Oregon matches for June 2010, got %d", len(got))
	}
}

func TestFilterEvents_MinMagnitudeBoundary(t *testing.T) {
	table := mixedTable()
	lo, _, _ := table.MagnitudeRange()

	for _, tc := range []struct{ month, year int }{{3, 2015}, {1, 2015}, {6, 2021}, {3, 2012}} {
		want := 0
		for _, e := range table.Events() {
			if e.Month == tc.month && e.Year == tc.year {
				want++
			}
		}
		if got := FilterEvents(table, tc.month, tc.year, lo, nil); len(got) != want {
			t.Errorf("%d/%d: expected %d matches at min magnitude, got %d", tc.month, tc.year, want, len(got))
		}
	}
}

func TestFilterEvents_SubsetOfPredicate(t *testing.T) {
	table := mixedTable()
	got := FilterEvents(table, 3, 2015, 5.0, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0] != (models.Coordinates{Latitude: 38.0, Longitude: -122.0}) {
		t.Errorf("unexpected coordinate %+v", got[0])
	}
}

func TestYearlyFrequency(t *testing.T) {
	table := mixedTable()
	got := YearlyFrequency(table)

	want := []YearCount{{2010, 2}, {2012, 1}, {2015, 2}, {2021, 2}}
	if len(got) != len(want) {
		t.Fatalf("expected %d years, got %d: %+v", len(want), len(got), got)
	}
	total := 0
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %+v, got %+v", i, want[i], got[i])
		}
		if i > 0 && got[i].Year <= got[i-1].Year {
			t.Errorf("years not strictly ascending at %d", i)
		}
		total += got[i].Count
	}
	if total != table.Len() {
		t.Errorf("counts sum to %d, table has %d rows", total, table.Len())
	}
}

func TestYearlyFrequency_EmptyTable(t *testing.T) {
	got := YearlyFrequency(models.NewEventTable(nil))
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %#v", got)
	}
}

func TestTopNByMagnitude_Scenario(t *testing.T) {
	table := scenarioTable()
	got := TopNByMagnitude(table, 3, 2020, 3, 2021, 2)

	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0] != table.At(2) {
		t.Errorf("expected first result to be row 3, got %+v", got[0])
	}
	if got[1] != table.At(0) {
		t.Errorf("expected second result to be row 1, got %+v", got[1])
	}
}

func TestTopNByMagnitude_IndependentRanges(t *testing.T) {
	table := mixedTable()
	got := TopNByMagnitude(table, 3, 2010, 6, 2021, 10)

	// June 2010, March 2012, March 2015 and June 2021 all match even though
	// a calendar interval starting in March 2010 would treat them differently.
	// January and August rows never match.
	if len(got) != 4 {
		t.Fatalf("expected 4 matches, got %d: %+v", len(got), got)
	}
	for i, e := range got {
		if e.Month < 3 || e.Month > 6 || e.Year < 2010 || e.Year > 2021 {
			t.Errorf("event %+v outside month/year ranges", e)
		}
		if i > 0 && e.Magnitude > got[i-1].Magnitude {
			t.Errorf("magnitudes increase at index %d", i)
		}
	}
}

func TestTopNByMagnitude_StableTies(t *testing.T) {
	table := mixedTable()
	got := TopNByMagnitude(table, 1, 2010, 12, 2021, 3)

	// 6.4 first, then the two 5.2 rows in table order.
	if got[0].Magnitude != 6.4 {
		t.Fatalf("expected 6.4 first, got %v", got[0].Magnitude)
	}
	if got[1] != table.At(1) || got[2] != table.At(3) {
		t.Errorf("ties not kept in table order: %+v", got)
	}
}

func TestTopNByMagnitude_FewerThanN(t *testing.T) {
	got := TopNByMagnitude(scenarioTable(), 3, 2021, 3, 2021, 10)
	if len(got) != 2 {
		t.Errorf("expected all 2 matches, got %d", len(got))
	}

	if got := TopNByMagnitude(scenarioTable(), 1, 2000, 12, 2030, 0); len(got) != 0 {
		t.Errorf("expected no results for n=0, got %d", len(got))
	}
}

func TestTopNByMagnitude_DoesNotMutateTable(t *testing.T) {
	table := mixedTable()
	before := table.Events()
	TopNByMagnitude(table, 1, 2000, 12, 2030, 5)

	for i, e := range table.Events() {
		if e != before[i] {
			t.Fatalf("row %d changed: %+v -> %+v", i, before[i], e)
		}
	}
}

func TestMagnitudeHistogram(t *testing.T) {
	table := mixedTable()
	bins := MagnitudeHistogram(table, 4)

	if len(bins) != 4 {
		t.Fatalf("expected 4 bins, got %d", len(bins))
	}
	if bins[0].Lower != 2.4 || bins[3].Upper != 6.4 {
		t.Errorf("unexpected range [%v, %v]", bins[0].Lower, bins[3].Upper)
	}

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	if total != table.Len() {
		t.Errorf("bins hold %d events, table has %d", total, table.Len())
	}
	// The maximum lands in the last bin.
	if bins[3].Count == 0 {
		t.Error("expected the maximum magnitude in the last bin")
	}
}

func TestMagnitudeHistogram_Degenerate(t *testing.T) {
	if got := MagnitudeHistogram(models.NewEventTable(nil), 30); len(got) != 0 {
		t.Errorf("expected no bins for empty table, got %d", len(got))
	}

	single := models.NewEventTable([]models.Event{{Year: 2020, Month: 1, Magnitude: 3}})
	bins := MagnitudeHistogram(single, 0)
	if len(bins) != DefaultHistogramBins {
		t.Fatalf("expected default bin count, got %d", len(bins))
	}
	if bins[0].Lower != 2.5 || bins[len(bins)-1].Upper != 3.5 {
		t.Errorf("expected widened range [2.5, 3.5], got [%v, %v]", bins[0].Lower, bins[len(bins)-1].Upper)
	}
}

func TestSelectorOptions(t *testing.T) {
	opts := SelectorOptions(mixedTable())

	if len(opts.Months) != 12 || opts.Months[0] != "January" {
		t.Errorf("unexpected months %v", opts.Months)
	}
	if len(opts.Years) != 12 || opts.Years[0] != 2010 || opts.Years[11] != 2021 {
		t.Errorf("expected 2010..2021, got %v", opts.Years)
	}
	if opts.MinMagnitude != 2 || opts.MaxMagnitude != 6 {
		t.Errorf("expected slider 2..6, got %d..%d", opts.MinMagnitude, opts.MaxMagnitude)
	}

	empty := SelectorOptions(models.NewEventTable(nil))
	if len(empty.Years) != 0 {
		t.Errorf("expected no years for empty table, got %v", empty.Years)
	}
}

func TestSummaryStats_SkipsMissingMagnitudeError(t *testing.T) {
	table := models.NewEventTable([]models.Event{
		{Year: 2021, Month: 1, Magnitude: 3.0, MagnitudeError: 0.4},
		{Year: 2021, Month: 2, Magnitude: 4.0, MagnitudeError: math.NaN()},
	})
	s := SummaryStats(table, 2021)

	if s.Count != 2 {
		t.Errorf("expected both rows counted, got %d", s.Count)
	}
	if s.MeanMagnitude != 3.5 {
		t.Errorf("expected mean magnitude 3.5, got %v", s.MeanMagnitude)
	}
	if s.MeanMagnitudeError != 0.4 {
		t.Errorf("expected mean error 0.4, got %v", s.MeanMagnitudeError)
	}
}
