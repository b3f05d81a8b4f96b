package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
	"github.com/mr1hm/go-quake-dashboard/internal/query"
)

var statsYear int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count events in a year and average magnitude over the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		year := statsYear
		if year == 0 {
			year = query.LatestYear(dataset.Table)
		}
		return printJSON(cmd.OutOrStdout(), query.SummaryStats(dataset.Table, year))
	},
}

var (
	eventsMonth  string
	eventsYear   int
	eventsMinMag float64
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List coordinates of events in a month and year above a magnitude",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, ok := models.ParseMonth(eventsMonth)
		if !ok {
			return fmt.Errorf("invalid month %q", eventsMonth)
		}
		_, region, err := scopedTable()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), query.FilterEvents(dataset.Table, month, eventsYear, eventsMinMag, region))
	},
}

var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Count events per year",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _, err := scopedTable()
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), query.YearlyFrequency(table))
	},
}

var (
	topStartMonth, topEndMonth string
	topStartYear, topEndYear   int
	topN                       int
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the strongest events within month and year ranges",
	Long: `List the strongest events whose month is within --start-month..--end-month
and whose year is within --start-year..--end-year. The two ranges are
independent: they do not form a calendar interval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startMonth, ok := models.ParseMonth(topStartMonth)
		if !ok {
			return fmt.Errorf("invalid start month %q", topStartMonth)
		}
		endMonth, ok := models.ParseMonth(topEndMonth)
		if !ok {
			return fmt.Errorf("invalid end month %q", topEndMonth)
		}
		n := topN
		if n == 0 {
			n = cfg.Dashboard.DefaultTopN
		}
		first, last, _ := dataset.Table.YearRange()
		if cmd.Flags().Changed("start-year") {
			first = topStartYear
		}
		if cmd.Flags().Changed("end-year") {
			last = topEndYear
		}
		return printJSON(cmd.OutOrStdout(), query.TopNByMagnitude(dataset.Table, startMonth, first, endMonth, last, n))
	},
}

var histogramBins int

var histogramCmd = &cobra.Command{
	Use:   "histogram",
	Short: "Bucket magnitudes into equal-width bins",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, _, err := scopedTable()
		if err != nil {
			return err
		}
		bins := histogramBins
		if bins == 0 {
			bins = cfg.Dashboard.HistogramBins
		}
		return printJSON(cmd.OutOrStdout(), query.MagnitudeHistogram(table, bins))
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "year to count (default latest in dataset)")

	eventsCmd.Flags().StringVar(&eventsMonth, "month", "January", "month number or name")
	eventsCmd.Flags().IntVar(&eventsYear, "year", 0, "year")
	eventsCmd.Flags().Float64Var(&eventsMinMag, "min-magnitude", 0, "minimum magnitude, inclusive")
	eventsCmd.MarkFlagRequired("year")
	addRegionFlag(eventsCmd)

	addRegionFlag(yearlyCmd)

	topCmd.Flags().StringVar(&topStartMonth, "start-month", "1", "first month, inclusive")
	topCmd.Flags().StringVar(&topEndMonth, "end-month", "12", "last month, inclusive")
	topCmd.Flags().IntVar(&topStartYear, "start-year", 0, "first year, inclusive (default earliest)")
	topCmd.Flags().IntVar(&topEndYear, "end-year", 0, "last year, inclusive (default latest)")
	topCmd.Flags().IntVarP(&topN, "limit", "n", 0, "number of events (default DEFAULT_TOP_N)")

	histogramCmd.Flags().IntVar(&histogramBins, "bins", 0, "number of bins (default HISTOGRAM_BINS)")
	addRegionFlag(histogramCmd)

	RootCmd.AddCommand(statsCmd, eventsCmd, yearlyCmd, topCmd, histogramCmd)
}
