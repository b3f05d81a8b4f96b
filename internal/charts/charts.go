// Package charts renders the dashboard's figures as PNG images.
package charts

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
	"github.com/mr1hm/go-quake-dashboard/internal/query"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to plot")

const (
	width  = 10 * vg.Inch
	height = 4 * vg.Inch
)

// MagnitudeHistogram draws the distribution of magnitudes in table.
func MagnitudeHistogram(w io.Writer, table *models.EventTable, bins int) error {
	if table.Len() == 0 {
		return ErrNoData
	}
	if bins <= 0 {
		bins = query.DefaultHistogramBins
	}

	values := make(plotter.Values, 0, table.Len())
	table.Each(func(_ int, e models.Event) bool {
		values = append(values, e.Magnitude)
		return true
	})

	p := plot.New()
	p.Title.Text = "Distribution of Earthquake Strength"
	p.X.Label.Text = "Earthquake Magnitude"
	p.Y.Label.Text = "Number of Earthquakes"

	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return fmt.Errorf("error building histogram: %w", err)
	}
	p.Add(plotter.NewGrid(), h)

	return save(w, p)
}

// YearlyBars draws per-year counts as a bar chart.
func YearlyBars(w io.Writer, counts []query.YearCount, title string) error {
	if len(counts) == 0 {
		return ErrNoData
	}

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = strconv.Itoa(c.Year)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Earthquakes"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("error building bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(plotter.NewGrid(), bars)
	p.NominalX(labels...)

	return save(w, p)
}

// YearlyLine draws per-year counts as a line.
func YearlyLine(w io.Writer, counts []query.YearCount, title string) error {
	if len(counts) == 0 {
		return ErrNoData
	}

	points := make(plotter.XYs, len(counts))
	for i, c := range counts {
		points[i].X = float64(c.Year)
		points[i].Y = float64(c.Count)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Earthquakes"

	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("error building line: %w", err)
	}
	line.Width = vg.Points(2)
	p.Add(plotter.NewGrid(), line)

	return save(w, p)
}

func save(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("error creating png writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
