// Package export writes event tables as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// Header matches the column names the loader reads, so an exported CSV can
// be loaded again with the file source.
var Header = []string{"year", "month", "mag", "magError", "latitude", "longitude"}

const sheetName = "Earthquakes"

func WriteCSV(w io.Writer, table *models.EventTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	var writeErr error
	table.Each(func(_ int, e models.Event) bool {
		writeErr = cw.Write(csvRow(e))
		return writeErr == nil
	})
	if writeErr != nil {
		return fmt.Errorf("error writing row: %w", writeErr)
	}

	cw.Flush()
	return cw.Error()
}

func csvRow(e models.Event) []string {
	magErr := ""
	if !math.IsNaN(e.MagnitudeError) {
		magErr = formatFloat(e.MagnitudeError)
	}
	return []string{
		strconv.Itoa(e.Year),
		strconv.Itoa(e.Month),
		formatFloat(e.Magnitude),
		magErr,
		formatFloat(e.Latitude),
		formatFloat(e.Longitude),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteXLSX writes table as a single-sheet workbook with a frozen header row.
func WriteXLSX(w io.Writer, table *models.EventTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("error creating stream writer: %w", err)
	}

	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("error freezing header: %w", err)
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	var writeErr error
	table.Each(func(i int, e models.Event) bool {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			writeErr = err
			return false
		}
		var magErr any
		if !math.IsNaN(e.MagnitudeError) {
			magErr = e.MagnitudeError
		}
		writeErr = sw.SetRow(cell, []any{e.Year, e.Month, e.Magnitude, magErr, e.Latitude, e.Longitude})
		return writeErr == nil
	})
	if writeErr != nil {
		return fmt.Errorf("error writing row: %w", writeErr)
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("error flushing sheet: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}
