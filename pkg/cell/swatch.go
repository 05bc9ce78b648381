package cell

import (
	"strings"

	"github.com/vango-dev/gridcell/pkg/vdom"
)

// SwatchName is the registry name of the color swatch variant.
const SwatchName = "swatch"

// Swatch renders a small square filled with the cell value, which is a
// CSS color, followed by the value as text. Long text is cut off with an
// ellipsis instead of wrapping. An absent value renders nothing.
type Swatch struct{}

// Name implements Variant.
func (Swatch) Name() string { return SwatchName }

// Describe implements Describer.
func (Swatch) Describe() Description {
	return Description{Summary: "color chip followed by the color text; absent values render nothing"}
}

// Mount implements Variant.
func (Swatch) Mount(Context) (Renderer, error) {
	return RenderFunc(renderSwatch), nil
}

func renderSwatch(ctx Context) *vdom.VNode {
	if IsNil(ctx.Value) {
		return nil
	}
	color := Stringify(ctx.Value)
	if strings.TrimSpace(color) == "" {
		return nil
	}
	return vdom.Span(
		vdom.Class("gc-swatch"),
		vdom.Styles(
			"display", "block",
			"overflow", "hidden",
			"white-space", "nowrap",
			"text-overflow", "ellipsis",
		),
		vdom.Span(
			vdom.Class("gc-swatch-chip"),
			vdom.Styles(
				"display", "inline-block",
				"width", "10px",
				"height", "10px",
				"margin-right", "5px",
				"background-color", cssValue(color),
			),
		),
		color,
	)
}

// cssValue strips characters that would let a value escape its
// declaration inside a style attribute.
func cssValue(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\', '\n', '\r':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
