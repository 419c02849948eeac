// Command census computes the demographic report over the adult census
// dataset and prints it, serves it over HTTP, or imports the CSV into
// PostgreSQL.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/census/internal/config"
	"github.com/JonMunkholm/census/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand. Set flags override the
// environment.
type options struct {
	dataPath string
	source   string
	format   string
	envFile  bool

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("census failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "census",
		Short: "Demographic report over the adult census dataset",
		Long: `census reads the 15-column adult census dataset from a CSV file or
PostgreSQL and reports race counts, education and income percentages,
minimum work hours and the top earning country and occupation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.dataPath, "data", "", "CSV file to read (default is $CENSUS_DATA_PATH or adult.data.csv)")
	rootCmd.PersistentFlags().StringVar(&opts.source, "source", "", "Dataset source: file or postgres (default is $CENSUS_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", "", "Report format: text or json (default is $REPORT_FORMAT)")
	rootCmd.PersistentFlags().BoolVar(&opts.envFile, "env-file", true, "Load variables from .env when present")

	rootCmd.AddCommand(newReportCmd(opts), newServeCmd(opts), newImportCmd(opts))
	return rootCmd
}

// load reads .env and the configuration, applies flag overrides and sets
// up logging.
func (o *options) load(cmd *cobra.Command) error {
	if o.envFile {
		if err := godotenv.Overload(); err == nil {
			slog.Debug("loaded .env file")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Dataset.Path = o.dataPath
	}
	if flags.Changed("source") {
		cfg.Dataset.Source = o.source
	}
	if flags.Changed("format") {
		cfg.Report.Format = o.format
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	o.cfg = cfg
	return nil
}
