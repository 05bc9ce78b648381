package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/gridcell/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬─┐┬┌┬┐┌─┐┌─┐┬  ┬
  │ ┬├┬┘│ ││└─┐├┤ │  │
  └─┘┴└─┴─┴┘└─┘└─┘┴─┘┴─┘
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "gridcell",
		Short: "Cell renderers for server-rendered data grids",
		Long: `gridcell renders data grids whose cells are drawn by pluggable
cell renderers.

Columns name a renderer (button, repeatIcon, groupStyle, swatch or
text) in gridcell.json. Rows come from a local JSON/YAML file or an
s3://bucket/key object. Features include:

  • Static HTML and terminal output
  • Live preview server with click events over WebSocket
  • Prometheus metrics and OpenTelemetry tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (default: nearest gridcell.json)")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(&configPath),
		serveCmd(&configPath),
		variantsCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
