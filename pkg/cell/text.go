package cell

import "github.com/vango-dev/gridcell/pkg/vdom"

// TextName is the registry name of the plain text variant, used when a
// column does not name a renderer.
const TextName = "text"

// Text renders the value's display text. Absent values render nothing.
type Text struct{}

// Name implements Variant.
func (Text) Name() string { return TextName }

// Describe implements Describer.
func (Text) Describe() Description {
	return Description{Summary: "plain value text (default)"}
}

// Mount implements Variant.
func (Text) Mount(Context) (Renderer, error) {
	return RenderFunc(func(ctx Context) *vdom.VNode {
		if IsNil(ctx.Value) {
			return nil
		}
		return vdom.Text(Stringify(ctx.Value))
	}), nil
}
