package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/census/internal/census"
	"github.com/JonMunkholm/census/internal/config"
	"github.com/JonMunkholm/census/internal/dataset"
	"github.com/JonMunkholm/census/internal/report"
	"github.com/jackc/pgx/v5/pgxpool"
)

// connect opens a pgx pool sized from cfg and verifies it with a ping.
func connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("connected to database", "database", poolConfig.ConnConfig.Database)
	return pool, nil
}

// loadDataset reads the dataset from the configured source. The returned
// label names the source in reports.
func loadDataset(ctx context.Context, cfg *config.Config) (census.Dataset, dataset.LoadStats, string, error) {
	if strings.ToLower(cfg.Dataset.Source) == config.SourcePostgres {
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			return nil, dataset.LoadStats{}, "", err
		}
		defer pool.Close()

		ds, err := dataset.NewStore(pool, cfg.Dataset.Table).Load(ctx)
		if err != nil {
			return nil, dataset.LoadStats{}, "", err
		}
		return ds, dataset.LoadStats{Rows: len(ds)}, "postgres:" + cfg.Dataset.Table, nil
	}

	ds, stats, err := dataset.LoadFile(ctx, cfg.Dataset.Path, cfg.Dataset.MaxFileSize)
	if err != nil {
		return nil, stats, "", err
	}
	if stats.Skipped > 0 {
		slog.Warn("skipped malformed rows", "path", cfg.Dataset.Path, "skipped", stats.Skipped)
	}
	return ds, stats, cfg.Dataset.Path, nil
}

// buildReport loads the dataset and runs the analysis.
func buildReport(ctx context.Context, cfg *config.Config) (report.Report, error) {
	ds, stats, source, err := loadDataset(ctx, cfg)
	if err != nil {
		return report.Report{}, err
	}

	rep := report.New(source, stats, census.Analyze(ds))
	slog.Info("report generated",
		"run_id", rep.RunID,
		"source", rep.Source,
		"rows", rep.Rows,
		"skipped", rep.Skipped,
	)
	return rep, nil
}
