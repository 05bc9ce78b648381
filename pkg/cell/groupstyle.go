package cell

import "github.com/vango-dev/gridcell/pkg/vdom"

// GroupStyleName is the registry name of the conditional-style variant.
const GroupStyleName = "groupStyle"

const (
	defaultGroupColor = "#2244cc"
	defaultLeafColor  = "#333333"
)

// GroupStyle tints the cell text one way for group rows and another way
// for ordinary rows. The row flag is read once at mount; later renders
// reuse that choice until the host mounts the cell again.
//
// Params:
//   - groupColor: text color for group rows (default "#2244cc")
//   - leafColor: text color for other rows (default "#333333")
type GroupStyle struct{}

// Name implements Variant.
func (GroupStyle) Name() string { return GroupStyleName }

// Describe implements Describer.
func (GroupStyle) Describe() Description {
	return Description{
		Summary: "styles group rows differently from leaf rows",
		Params:  []string{"groupColor", "leafColor"},
	}
}

// Mount implements Variant.
func (GroupStyle) Mount(ctx Context) (Renderer, error) {
	r := &groupStyleRenderer{group: ctx.IsGroup()}
	if r.group {
		r.class = "gc-group"
		r.color = cssValue(ctx.Params.String("groupColor", defaultGroupColor))
		r.weight = "bold"
	} else {
		r.class = "gc-leaf"
		r.color = cssValue(ctx.Params.String("leafColor", defaultLeafColor))
		r.weight = "normal"
	}
	return r, nil
}

type groupStyleRenderer struct {
	group  bool
	class  string
	color  string
	weight string
}

// Group reports the styling chosen at mount.
func (r *groupStyleRenderer) Group() bool { return r.group }

// Render implements Renderer.
func (r *groupStyleRenderer) Render(ctx Context) *vdom.VNode {
	return vdom.Span(
		vdom.Class("gc-styled", r.class),
		vdom.Styles("color", r.color, "font-weight", r.weight),
		Stringify(ctx.Value),
	)
}
