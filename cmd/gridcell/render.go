package main

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/grid"
	"github.com/vango-dev/gridcell/pkg/render"
)

func renderCmd(configPath *string) *cobra.Command {
	var (
		format string
		out    string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the grid once",
		Long: `Render the configured grid to HTML or terminal text.

HTML output is a complete static page. Text output draws the table
with colored swatches when the terminal supports them.

Examples:
  gridcell render
  gridcell render --out grid.html
  gridcell render --format text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pretty") {
				cfg.Render.Pretty = pretty
			}

			g, err := buildGrid(cmd.Context(), cfg, grid.WithCaption(cfg.Title))
			if err != nil {
				return err
			}
			defer g.Close()

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "html":
				r := render.NewRenderer(render.RendererConfig{Pretty: cfg.Render.Pretty})
				return r.RenderPage(w, render.PageData{
					Body:  g.RenderContext(cmd.Context()),
					Title: cfg.Title,
				})
			case "text":
				profile := termenv.Ascii
				if out == "" {
					profile = termenv.EnvColorProfile()
				}
				t := render.NewTextRenderer(render.TextConfig{
					Profile:      profile,
					MaxCellWidth: cfg.Render.MaxCellWidth,
				})
				_, err := io.WriteString(w, t.Render(g.RenderContext(cmd.Context())))
				return err
			default:
				return errors.New("E500").WithDetailf("Format %q is not one of html, text.", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "html", "Output format: html or text")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent HTML output (default from config)")

	return cmd
}
