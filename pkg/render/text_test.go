package render

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/vango-dev/gridcell/pkg/vdom"
)

func plainText() *TextRenderer {
	return NewTextRenderer(TextConfig{Profile: termenv.Ascii})
}

func TestTextRendererTable(t *testing.T) {
	table := vdom.Table(
		vdom.Thead(vdom.Tr(vdom.Th("Name"), vdom.Th("Stars"))),
		vdom.Tbody(
			vdom.Tr(vdom.Td("Alpha"), vdom.Td(vdom.Span(vdom.Class("gc-repeat"),
				vdom.Img(vdom.Alt("*")), vdom.Img(vdom.Alt("*"))))),
			vdom.Tr(vdom.Td("Be"), vdom.Td(vdom.Button("Buy"))),
		),
	)

	got := plainText().Render(table)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "Name  │ Stars" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "──────") {
		t.Errorf("rule = %q", lines[1])
	}
	if lines[2] != "Alpha │ [*][*]" {
		t.Errorf("row 1 = %q", lines[2])
	}
	if lines[3] != "Be    │ [ Buy ]" {
		t.Errorf("row 2 = %q", lines[3])
	}
}

func TestTextRendererSwatchChip(t *testing.T) {
	node := vdom.Span(
		vdom.Span(vdom.Styles("background-color", "red")),
		"red",
	)
	if got := plainText().Render(node); got != "■ red" {
		t.Errorf("got %q, want %q", got, "■ red")
	}
}

func TestTextRendererTruncates(t *testing.T) {
	r := NewTextRenderer(TextConfig{Profile: termenv.Ascii, MaxCellWidth: 5})
	got := r.Render(vdom.Table(vdom.Tr(vdom.Td("abcdefghij"))))
	if got != "abcd…" {
		t.Errorf("got %q, want %q", got, "abcd…")
	}
}

func TestTextRendererColorsWhenEnabled(t *testing.T) {
	r := NewTextRenderer(TextConfig{Profile: termenv.TrueColor})
	got := r.Render(vdom.Span(vdom.Styles("color", "#ff0000"), "hot"))
	if !strings.Contains(got, "\x1b[") || !strings.Contains(got, "hot") {
		t.Errorf("expected ANSI styled output, got %q", got)
	}
}

func TestCSSColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#ff0000", "#ff0000", true},
		{"#f00", "#ff0000", true},
		{"navy", "#000080", true},
		{"rebeccapurple", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := cssColor(tt.in)
		if ok != tt.ok || string(got) != tt.want {
			t.Errorf("cssColor(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseStyle(t *testing.T) {
	got := parseStyle("Color: Red; font-weight:bold;;junk")
	if got["color"] != "red" || got["font-weight"] != "bold" || len(got) != 2 {
		t.Errorf("parseStyle = %v", got)
	}
}

func TestTextRendererCaption(t *testing.T) {
	table := vdom.Table(
		vdom.Caption("Fruit"),
		vdom.Thead(vdom.Tr(vdom.Th("Name"))),
		vdom.Tbody(vdom.Tr(vdom.Td("Apple"))),
	)
	lines := strings.Split(plainText().Render(table), "\n")
	if len(lines) != 4 || lines[0] != "Fruit" {
		t.Errorf("got %q", lines)
	}
}
