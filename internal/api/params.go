package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// paramError is a bad query parameter; handlers answer it with 400.
type paramError struct {
	name string
	msg  string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.name, e.msg)
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	s := c.Query(name)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &paramError{name, "must be an integer"}
	}
	return n, nil
}

func queryFloat(c *gin.Context, name string, fallback float64) (float64, error) {
	s := c.Query(name)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &paramError{name, "must be a number"}
	}
	return f, nil
}

func queryMonth(c *gin.Context, name string, fallback int) (int, error) {
	s := c.Query(name)
	if s == "" {
		return fallback, nil
	}
	m, ok := models.ParseMonth(s)
	if !ok {
		return 0, &paramError{name, "must be 1-12 or a month name"}
	}
	return m, nil
}

func queryRegion(c *gin.Context) (*models.Region, error) {
	r, ok := models.LookupRegion(c.Query("region"))
	if !ok {
		return nil, &paramError{"region", "unknown region " + strconv.Quote(c.Query("region"))}
	}
	return r, nil
}

// eventsParams are the map panel selections. Unset values default to the
// first choice each selector offers: January, the earliest year, and the
// lowest whole magnitude.
type eventsParams struct {
	Month        int
	Year         int
	MinMagnitude float64
	Region       *models.Region
}

func parseEventsParams(c *gin.Context, table *models.EventTable) (eventsParams, error) {
	var (
		p   eventsParams
		err error
	)
	if p.Region, err = queryRegion(c); err != nil {
		return p, err
	}

	scope := table
	if p.Region != nil {
		scope = p.Region.Apply(table)
	}
	firstYear, _, _ := scope.YearRange()
	minMag, _, _ := scope.MagnitudeRange()

	if p.Month, err = queryMonth(c, "month", 1); err != nil {
		return p, err
	}
	if p.Year, err = queryInt(c, "year", firstYear); err != nil {
		return p, err
	}
	if p.MinMagnitude, err = queryFloat(c, "min_magnitude", float64(int(minMag))); err != nil {
		return p, err
	}
	return p, nil
}

// topParams default to every month of every year in the table.
type topParams struct {
	StartMonth, StartYear int
	EndMonth, EndYear     int
	N                     int
}

func parseTopParams(c *gin.Context, table *models.EventTable, defaultN int) (topParams, error) {
	var (
		p   topParams
		err error
	)
	firstYear, lastYear, _ := table.YearRange()

	if p.StartMonth, err = queryMonth(c, "start_month", 1); err != nil {
		return p, err
	}
	if p.EndMonth, err = queryMonth(c, "end_month", 12); err != nil {
		return p, err
	}
	if p.StartYear, err = queryInt(c, "start_year", firstYear); err != nil {
		return p, err
	}
	if p.EndYear, err = queryInt(c, "end_year", lastYear); err != nil {
		return p, err
	}
	if p.N, err = queryInt(c, "n", defaultN); err != nil {
		return p, err
	}
	if p.N < 0 || p.N > maxTopN {
		return p, &paramError{"n", fmt.Sprintf("must be between 0 and %d", maxTopN)}
	}
	return p, nil
}
