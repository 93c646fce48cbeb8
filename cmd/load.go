package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/hurou927/spam-graph/internal/config"
	"github.com/hurou927/spam-graph/internal/db"
	"github.com/hurou927/spam-graph/internal/source"
	"github.com/hurou927/spam-graph/internal/table"
)

// applySourceFlags applies --source and --input over the loaded config.
// An --input path implies a CSV source.
func applySourceFlags(sourceType, input string) error {
	if sourceType != "" {
		cfg.SetSourceType(sourceType)
	}
	if input != "" {
		cfg.SetSourceType(config.SourceCSV)
		cfg.Source.Path = input
	}
	return cfg.Validate()
}

// loadComments reads the comment table from the configured source.
func loadComments(ctx context.Context) (*table.Table, error) {
	var (
		t     *table.Table
		stats source.LoadStats
		err   error
	)

	switch cfg.Source.Type {
	case config.SourcePostgres:
		pool, perr := db.NewPool(ctx, &cfg.Connection, logger)
		if perr != nil {
			return nil, fmt.Errorf("connecting to database: %w", perr)
		}
		defer pool.Close()

		t, stats, err = source.LoadPostgres(ctx, pool, cfg.Source, logger)
	default:
		t, stats, err = source.LoadCSVFile(cfg.Source.Path, cfg.Source.Columns, logger)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("loaded comments",
		zap.String("source", cfg.Source.Type),
		zap.Int("rows", stats.Rows),
		zap.Int("skipped", stats.Skipped),
	)
	return t, nil
}

// openOutput returns stdout for "" or "-", otherwise a created file.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
