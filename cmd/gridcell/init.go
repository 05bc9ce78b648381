package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/gridcell/internal/config"
	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/grid"
)

const sampleRowsFile = "rows.yaml"

const sampleRows = `# Rows for the sample grid.
- id: fruit
  group: true
  data:
    name: Fruit
- id: apple
  data:
    name: Apple
    stars: 3
    color: red
    buy: apple
- id: pear
  data:
    name: Pear
    stars: 2
    color: "#d1e231"
    buy: pear
- id: plum
  data:
    name: Plum
    stars: 0
    buy: plum
`

// sampleConfig returns the config written by init.
func sampleConfig() *config.Config {
	cfg := config.New()
	cfg.Title = "Fruit stand"
	cfg.Data = sampleRowsFile
	cfg.Render.AssetBase = "/images/"
	cfg.Columns = []grid.ColumnDef{
		{Field: "name", Header: "Name", Renderer: "groupStyle"},
		{Field: "stars", Header: "Rating", Renderer: "repeatIcon", Params: map[string]any{"rendererImage": "star.png", "alt": "*"}},
		{Field: "color", Header: "Color", Renderer: "swatch"},
		{Field: "buy", Renderer: "button", Params: map[string]any{"label": "Buy"}},
	}
	return cfg
}

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a sample project",
		Long: `Create gridcell.json and a sample rows file in dir (default ".").

Examples:
  gridcell init
  gridcell init ./demo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if config.Exists(dir) && !force {
				return errors.Newf(errors.CategoryConfig, "a config file already exists in %s", dir).
					WithSuggestion("Use --force to overwrite it")
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}

			cfgPath := filepath.Join(dir, config.ConfigFileName)
			if err := sampleConfig().SaveTo(cfgPath); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(dir, sampleRowsFile), []byte(sampleRows), 0644); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			success(w, "Created %s", cfgPath)
			success(w, "Created %s", filepath.Join(dir, sampleRowsFile))
			info(w, "Run 'gridcell serve' in %s to preview it", dir)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}
