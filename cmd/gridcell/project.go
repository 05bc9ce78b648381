package main

import (
	"context"

	"github.com/vango-dev/gridcell/internal/config"
	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/grid"
	"github.com/vango-dev/gridcell/pkg/source"
)

// loadConfig reads the config at path, or the nearest project config
// when path is empty, and validates it.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildGrid creates the configured grid and loads its rows.
func buildGrid(ctx context.Context, cfg *config.Config, opts ...grid.Option) (*grid.Grid, error) {
	g, err := grid.New(cfg.ColumnDefs(), opts...)
	if err != nil {
		return nil, err
	}

	uri := cfg.DataSource()
	if uri == "" {
		return nil, errors.New("E300").
			WithDetail("No data source is configured.").
			WithSuggestion(`Set "data" in ` + cfg.Path() + ` to a rows file or s3:// URI`)
	}
	rows, err := source.Load(ctx, uri,
		source.WithRegion(cfg.S3.Region),
		source.WithEndpoint(cfg.S3.Endpoint),
	)
	if err != nil {
		return nil, err
	}
	if err := g.SetRows(rows); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}
