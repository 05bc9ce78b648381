package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vango-dev/gridcell/pkg/cell"
)

func variantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List cell renderer variants",
		Long:  `List the renderer names that columns can use, with their parameters.`,
		Run: func(cmd *cobra.Command, args []string) {
			listVariants(cmd, cell.DefaultRegistry())
		},
	}
}

// listVariants prints every variant in reg with its description.
func listVariants(cmd *cobra.Command, reg *cell.Registry) {
	w := cmd.OutOrStdout()
	r := lipgloss.NewRenderer(w)
	name := r.NewStyle().Bold(true).Width(12)
	dim := r.NewStyle().Faint(true)

	for _, n := range reg.Names() {
		v, _ := reg.Lookup(n)
		desc := cell.Describe(v)
		fmt.Fprintf(w, "  %s %s\n", name.Render(n), desc.Summary)
		if len(desc.Params) > 0 {
			fmt.Fprintf(w, "  %s %s\n", name.Render(""), dim.Render("params: "+strings.Join(desc.Params, ", ")))
		}
	}
}
