package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/vango-dev/gridcell/pkg/vdom"
)

// TextConfig configures the terminal renderer.
type TextConfig struct {
	// Profile selects the color depth. termenv.Ascii disables colors.
	Profile termenv.Profile

	// MaxCellWidth truncates table cells wider than this many cells
	// with an ellipsis. Zero means no limit.
	MaxCellWidth int

	// Separator is placed between table columns. Defaults to " │ ".
	Separator string
}

// TextRenderer renders VNode trees as terminal text.
type TextRenderer struct {
	config TextConfig
	lg     *lipgloss.Renderer
}

// NewTextRenderer creates a terminal renderer.
func NewTextRenderer(config TextConfig) *TextRenderer {
	if config.Separator == "" {
		config.Separator = " │ "
	}
	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(config.Profile)
	return &TextRenderer{config: config, lg: lg}
}

// Render returns the terminal representation of node.
func (t *TextRenderer) Render(node *vdom.VNode) string {
	var b strings.Builder
	t.renderBlock(&b, node)
	return strings.TrimRight(b.String(), "\n")
}

// renderBlock writes tables as aligned rows and everything else inline.
func (t *TextRenderer) renderBlock(b *strings.Builder, node *vdom.VNode) {
	if node == nil {
		return
	}
	switch {
	case node.Kind == vdom.KindElement && node.Tag == "table":
		b.WriteString(t.renderTable(node))
		b.WriteString("\n")
	case node.Kind == vdom.KindFragment,
		node.Kind == vdom.KindElement && (node.Tag == "div" || node.Tag == "body"):
		for _, child := range node.Children {
			t.renderBlock(b, child)
		}
	default:
		if s := t.renderInline(node); s != "" {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
}

type textRow struct {
	header bool
	cells  []string
}

// renderTable lays out th/td contents in aligned columns.
func (t *TextRenderer) renderTable(table *vdom.VNode) string {
	var (
		caption string
		rows    []textRow
	)
	vdom.Walk(table, func(n *vdom.VNode) bool {
		if n.Kind == vdom.KindElement && n.Tag == "caption" {
			caption = t.renderChildren(n)
			return false
		}
		if n.Kind != vdom.KindElement || n.Tag != "tr" {
			return true
		}
		row := textRow{}
		for _, c := range n.Children {
			if c == nil || c.Kind != vdom.KindElement || (c.Tag != "td" && c.Tag != "th") {
				continue
			}
			if c.Tag == "th" {
				row.header = true
			}
			row.cells = append(row.cells, t.fitCell(t.renderInline(c)))
		}
		rows = append(rows, row)
		return false
	})

	var widths []int
	for _, row := range rows {
		for i, cell := range row.cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	header := t.lg.NewStyle().Bold(true)
	lines := make([]string, 0, len(rows)+2)
	if caption != "" {
		lines = append(lines, header.Render(caption))
	}
	for _, row := range rows {
		parts := make([]string, len(row.cells))
		for i, cell := range row.cells {
			pad := widths[i] - lipgloss.Width(cell)
			if row.header {
				cell = header.Render(cell)
			}
			parts[i] = cell + strings.Repeat(" ", pad)
		}
		lines = append(lines, strings.TrimRight(strings.Join(parts, t.config.Separator), " "))
		if row.header {
			rule := make([]string, len(widths))
			for i, w := range widths {
				rule[i] = strings.Repeat("─", w)
			}
			lines = append(lines, strings.Join(rule, strings.Repeat("─", lipgloss.Width(t.config.Separator))))
		}
	}
	return strings.Join(lines, "\n")
}

func (t *TextRenderer) fitCell(s string) string {
	if t.config.MaxCellWidth <= 0 || lipgloss.Width(s) <= t.config.MaxCellWidth {
		return s
	}
	return ansi.Truncate(s, t.config.MaxCellWidth, "…")
}

// renderInline flattens node to a single styled line.
func (t *TextRenderer) renderInline(node *vdom.VNode) string {
	if node == nil {
		return ""
	}
	switch node.Kind {
	case vdom.KindText:
		return strings.ReplaceAll(node.Text, "\n", " ")
	case vdom.KindFragment:
		return t.renderChildren(node)
	}

	switch node.Tag {
	case "img":
		alt := node.GetAttr("alt")
		if alt == "" {
			return "◆"
		}
		return "[" + alt + "]"
	case "script", "style":
		return ""
	}

	content := t.renderChildren(node)
	decls := parseStyle(node.GetAttr("style"))
	style := t.lg.NewStyle()

	if c, ok := cssColor(decls["color"]); ok {
		style = style.Foreground(c)
	}
	if decls["font-weight"] == "bold" || node.Tag == "strong" || node.Tag == "th" {
		style = style.Bold(true)
	}
	if bg, ok := cssColor(decls["background-color"]); ok {
		if content == "" {
			// An empty box with a fill is a color chip.
			return style.Foreground(bg).Render("■")
		}
		style = style.Background(bg)
	}
	if node.Tag == "button" {
		content = "[ " + content + " ]"
	}
	if content == "" {
		return ""
	}
	return style.Render(content)
}

func (t *TextRenderer) renderChildren(node *vdom.VNode) string {
	var parts []string
	for _, child := range node.Children {
		if s := t.renderInline(child); s != "" {
			parts = append(parts, s)
		}
	}
	if node.Kind == vdom.KindElement && node.Tag == "span" && hasClass(node, "gc-repeat") {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, " ")
}

func hasClass(node *vdom.VNode, class string) bool {
	for _, c := range strings.Fields(node.GetAttr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

// parseStyle splits a style attribute into lower-cased declarations.
func parseStyle(style string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(prop))] = strings.ToLower(strings.TrimSpace(value))
	}
	return out
}

// namedColors covers the CSS basic color keywords.
var namedColors = map[string]string{
	"black":   "#000000",
	"silver":  "#c0c0c0",
	"gray":    "#808080",
	"grey":    "#808080",
	"white":   "#ffffff",
	"maroon":  "#800000",
	"red":     "#ff0000",
	"purple":  "#800080",
	"fuchsia": "#ff00ff",
	"magenta": "#ff00ff",
	"green":   "#008000",
	"lime":    "#00ff00",
	"olive":   "#808000",
	"yellow":  "#ffff00",
	"navy":    "#000080",
	"blue":    "#0000ff",
	"teal":    "#008080",
	"aqua":    "#00ffff",
	"cyan":    "#00ffff",
	"orange":  "#ffa500",
	"pink":    "#ffc0cb",
	"brown":   "#a52a2a",
}

// cssColor converts a CSS hex color or basic keyword to a terminal color.
func cssColor(value string) (lipgloss.Color, bool) {
	if value == "" {
		return "", false
	}
	if hex, ok := namedColors[value]; ok {
		value = hex
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return "", false
	}
	return lipgloss.Color(c.Hex()), true
}
