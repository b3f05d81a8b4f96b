package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mr1hm/go-quake-dashboard/internal/charts"
	"github.com/mr1hm/go-quake-dashboard/internal/export"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
	"github.com/mr1hm/go-quake-dashboard/internal/query"
	"github.com/mr1hm/go-quake-dashboard/internal/repository"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save the loaded dataset into a SQLite file for offline use",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repository.NewSQLiteDB(snapshotOut)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SaveEvents(cmd.Context(), dataset.Table); err != nil {
			return err
		}
		slog.Info("snapshot written", "path", snapshotOut, "rows", dataset.Table.Len())
		return nil
	},
}

var (
	chartKind string
	chartOut  string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a chart as PNG (magnitude, yearly-bar, yearly-line)",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		table, region, err := scopedTable()
		if err != nil {
			return err
		}

		title := "Earthquakes per Year"
		if region != nil {
			title = "Number of Earthquakes per Year in " + region.DisplayName()
		}

		var render func(w io.Writer) error
		switch chartKind {
		case "magnitude":
			render = func(w io.Writer) error {
				return charts.MagnitudeHistogram(w, table, cfg.Dashboard.HistogramBins)
			}
		case "yearly-bar":
			render = func(w io.Writer) error {
				return charts.YearlyBars(w, query.YearlyFrequency(table), title)
			}
		case "yearly-line":
			render = func(w io.Writer) error {
				return charts.YearlyLine(w, query.YearlyFrequency(table), title)
			}
		default:
			return fmt.Errorf("unknown chart kind %q", chartKind)
		}

		f, err := os.Create(chartOut)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		return render(f)
	},
}

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dataset as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		table, _, err := scopedTable()
		if err != nil {
			return err
		}

		var write func(io.Writer, *models.EventTable) error
		switch exportFormat {
		case "csv":
			write = export.WriteCSV
		case "xlsx":
			write = export.WriteXLSX
		default:
			return fmt.Errorf("unknown export format %q", exportFormat)
		}

		if exportOut == "" || exportOut == "-" {
			return write(cmd.OutOrStdout(), table)
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		return write(f, table)
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "./data/earthquakes.db", "SQLite file to write")

	chartCmd.Flags().StringVar(&chartKind, "kind", "magnitude", "magnitude, yearly-bar or yearly-line")
	chartCmd.Flags().StringVar(&chartOut, "out", "chart.png", "PNG file to write")
	addRegionFlag(chartCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "-", "file to write, - for stdout")
	addRegionFlag(exportCmd)

	RootCmd.AddCommand(snapshotCmd, chartCmd, exportCmd)
}
