package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mr1hm/go-quake-dashboard/internal/app"
	"github.com/mr1hm/go-quake-dashboard/internal/config"
	"github.com/mr1hm/go-quake-dashboard/internal/ingestion"
	"github.com/mr1hm/go-quake-dashboard/internal/logging"
	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

var (
	cfg     *config.Config
	dataset *ingestion.Dataset

	sourceFlag string
	pathFlag   string
	urlFlag    string
	regionFlag string
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "quakectl",
	Short:         "Query the earthquake dataset from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsDataset(cmd) {
			return nil
		}

		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		// Logs go to stderr so stdout stays machine-readable.
		logging.SetupWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

		if sourceFlag != "" {
			cfg.Dataset.Source = sourceFlag
		}
		if pathFlag != "" {
			cfg.Dataset.Path = pathFlag
		}
		if urlFlag != "" {
			cfg.Dataset.URL = urlFlag
		}

		dataset, err = app.LoadDataset(cmd.Context(), cfg.Dataset, nil)
		return err
	},
}

func needsDataset(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

// Execute runs the root command and is called by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "dataset source: http, file or sqlite (default from DATASET_SOURCE)")
	RootCmd.PersistentFlags().StringVar(&pathFlag, "path", "", "dataset path for the file and sqlite sources")
	RootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "dataset URL for the http source")
}

// scopedTable applies --region to the loaded table.
func scopedTable() (*models.EventTable, *models.Region, error) {
	region, ok := models.LookupRegion(regionFlag)
	if !ok {
		return nil, nil, fmt.Errorf("unknown region %q", regionFlag)
	}
	if region == nil {
		return dataset.Table, nil, nil
	}
	return region.Apply(dataset.Table), region, nil
}

func addRegionFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&regionFlag, "region", "", "restrict to a region (oregon)")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
