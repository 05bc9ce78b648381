package cell

import "github.com/vango-dev/gridcell/pkg/vdom"

// ButtonName is the registry name of the button variant.
const ButtonName = "button"

// Button renders a clickable control. Activating it emits one ClickEvent
// carrying the value bound at the most recent render.
//
// Params:
//   - label: button text (default "Click")
type Button struct{}

// Name implements Variant.
func (Button) Name() string { return ButtonName }

// Describe implements Describer.
func (Button) Describe() Description {
	return Description{
		Summary: "clickable button; emits the cell value on click",
		Params:  []string{"label"},
	}
}

// Mount implements Variant.
func (Button) Mount(ctx Context) (Renderer, error) {
	return &buttonRenderer{
		label:  ctx.Params.String("label", "Click"),
		rowID:  ctx.RowID(),
		column: ctx.Column,
		value:  ctx.Value,
	}, nil
}

type buttonRenderer struct {
	label    string
	rowID    string
	column   string
	value    any
	listener Listener
}

// OnInteraction implements Interactive.
func (b *buttonRenderer) OnInteraction(fn Listener) {
	b.listener = fn
}

// Destroy drops the listener so a recycled cell cannot emit.
func (b *buttonRenderer) Destroy() {
	b.listener = nil
}

// Render implements Renderer.
func (b *buttonRenderer) Render(ctx Context) *vdom.VNode {
	b.value = ctx.Value
	if id := ctx.RowID(); id != "" {
		b.rowID = id
	}
	return vdom.Button(
		vdom.Type("button"),
		vdom.Class("gc-button"),
		vdom.OnClick(b.activate),
		b.label,
	)
}

// activate emits the click event synchronously.
func (b *buttonRenderer) activate() {
	if b.listener == nil {
		return
	}
	b.listener(ClickEvent{
		Value:  b.value,
		RowID:  b.rowID,
		Column: b.column,
	})
}
