package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/census/internal/dataset"
	"github.com/JonMunkholm/census/internal/logging"
	"github.com/JonMunkholm/census/internal/report"
	"github.com/JonMunkholm/census/internal/web"
	"github.com/spf13/cobra"
)

// pathArg lets "census report data.csv" stand in for --data.
func (o *options) pathArg(args []string) {
	if len(args) == 1 {
		o.cfg.Dataset.Path = args[0]
	}
}

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report [path]",
		Short: "Print the demographic report",
		Long:  `Loads the dataset, computes every statistic and writes the report to stdout as text or JSON.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pathArg(args)

			rep, err := buildReport(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), rep, strings.ToLower(opts.cfg.Report.Format))
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve the report over HTTP",
		Long:  `Computes the report once, then serves it as HTML on / and JSON on /api/report until interrupted.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pathArg(args)

			rep, err := buildReport(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}

			server := web.NewServer(rep, opts.cfg.Server)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			slog.Info("shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return <-errCh
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "import [path]",
		Short: "Load the CSV into PostgreSQL",
		Long: `Reads the CSV file and replaces the contents of the census table with it
in one transaction. The postgres source then reads from that table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pathArg(args)
			cfg := opts.cfg
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}

			ctx := cmd.Context()
			ds, stats, err := dataset.LoadFile(ctx, cfg.Dataset.Path, cfg.Dataset.MaxFileSize)
			if err != nil {
				return err
			}

			pool, err := connect(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			store := dataset.NewStore(pool, cfg.Dataset.Table)
			if create {
				if err := store.EnsureTable(ctx); err != nil {
					return err
				}
			}

			n, err := store.Import(ctx, ds)
			if err != nil {
				return err
			}

			logging.WithFields(ctx, "table", cfg.Dataset.Table, "path", cfg.Dataset.Path).
				Info("import complete", "rows", n, "skipped", stats.Skipped)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows into %s (%d skipped)\n", n, cfg.Dataset.Table, stats.Skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&create, "create-table", true, "Create the table when it does not exist")
	return cmd
}
