package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// Column names in the source CSV.
const (
	colYear      = "year"
	colMonth     = "month"
	colMag       = "mag"
	colMagError  = "magError"
	colLatitude  = "latitude"
	colLongitude = "longitude"
)

var requiredColumns = []string{colYear, colMonth, colMag, colMagError, colLatitude, colLongitude}

// ParseCSV reads events from a CSV stream with a header row. Columns may
// appear in any order and extra columns are ignored. Rows with missing or
// unparseable required values, or values out of range, are skipped and
// counted. A missing magError is kept as NaN.
//
// An empty stream or a header without the required columns is an error.
func ParseCSV(r io.Reader) ([]models.Event, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, errors.New("empty resource")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("error reading header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		events  []models.Event
		skipped int
		line    = 1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			slog.Debug("skipping malformed csv row", "line", line, "error", err)
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("error reading row %d: %w", line, err)
		}

		e, ok := parseRow(rec, idx)
		if !ok {
			slog.Debug("skipping invalid row", "line", line)
			skipped++
			continue
		}
		events = append(events, e)
	}

	return events, skipped, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(rec []string, idx map[string]int) (models.Event, bool) {
	field := func(name string) string {
		i := idx[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		e  models.Event
		ok bool
	)
	if e.Year, ok = parseWhole(field(colYear)); !ok {
		return e, false
	}
	if e.Month, ok = parseWhole(field(colMonth)); !ok {
		return e, false
	}
	if e.Magnitude, ok = parseFloat(field(colMag)); !ok {
		return e, false
	}
	if e.Latitude, ok = parseFloat(field(colLatitude)); !ok {
		return e, false
	}
	if e.Longitude, ok = parseFloat(field(colLongitude)); !ok {
		return e, false
	}

	e.MagnitudeError = math.NaN()
	if s := field(colMagError); s != "" {
		if e.MagnitudeError, ok = parseFloat(s); !ok {
			return e, false
		}
	}

	return e, e.Valid()
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// maxWhole bounds integer columns so float input such as "1e30" cannot
// overflow the int conversion.
const maxWhole = 1 << 31

// parseWhole accepts "2021" and "2021.0"; spreadsheet exports write
// integer columns either way.
func parseWhole(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= -maxWhole || n >= maxWhole {
			return 0, false
		}
		return n, true
	}
	f, ok := parseFloat(s)
	if !ok || f != math.Trunc(f) || math.Abs(f) >= maxWhole {
		return 0, false
	}
	return int(f), true
}
