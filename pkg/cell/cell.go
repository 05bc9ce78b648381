package cell

import (
	"errors"
	"fmt"

	"github.com/vango-dev/gridcell/pkg/vdom"
)

// ErrMissingConfig reports that a column omitted a parameter its
// renderer cannot work without. It is an integration error: the grid
// configuration is wrong, and no renderer tries to recover from it.
var ErrMissingConfig = errors.New("missing required renderer parameter")

// RowNode is the host grid's record for one row.
type RowNode struct {
	// ID identifies the row within its grid.
	ID string

	// Group marks a group (aggregate) row.
	Group bool

	// Data holds the row's field values.
	Data map[string]any
}

// Context is what the host hands a renderer for one cell. It is read-only
// from the renderer's point of view.
type Context struct {
	// Value is the cell's current data.
	Value any

	// Node is the owning row. May be nil.
	Node *RowNode

	// Column is the field name of the column being rendered.
	Column string

	// Params is the column-level renderer configuration.
	Params Params
}

// IsGroup reports whether the owning row is a group row.
func (c Context) IsGroup() bool {
	return c.Node != nil && c.Node.Group
}

// RowID returns the owning row's ID, or "" when there is no row.
func (c Context) RowID() string {
	if c.Node == nil {
		return ""
	}
	return c.Node.ID
}

// ClickEvent is emitted by interactive renderers when the user activates them.
type ClickEvent struct {
	Value  any
	RowID  string
	Column string
}

// Listener receives interaction events.
type Listener func(ClickEvent)

// Renderer is a mounted renderer instance for a single cell.
type Renderer interface {
	// Render returns the cell's visual output for ctx, or nil for nothing.
	Render(ctx Context) *vdom.VNode
}

// Interactive is implemented by renderers that can emit interaction events.
type Interactive interface {
	OnInteraction(fn Listener)
}

// Destroyer is implemented by renderers that hold something to release
// when the host recycles the cell.
type Destroyer interface {
	Destroy()
}

// Variant is a rendering policy selected by column configuration.
type Variant interface {
	// Name is the identifier column definitions use to select the variant.
	Name() string

	// Mount creates the renderer instance for one cell. It fails only
	// when required configuration is missing.
	Mount(ctx Context) (Renderer, error)
}

// Description documents a variant for listings such as the CLI's
// variants command.
type Description struct {
	Summary string
	Params  []string
}

// Describer is implemented by variants that document themselves.
type Describer interface {
	Describe() Description
}

// Describe returns v's description, or a zero Description when v does
// not implement Describer.
func Describe(v Variant) Description {
	if d, ok := v.(Describer); ok {
		return d.Describe()
	}
	return Description{}
}

// RenderFunc adapts a plain function to a stateless Renderer.
type RenderFunc func(ctx Context) *vdom.VNode

// Render implements Renderer.
func (f RenderFunc) Render(ctx Context) *vdom.VNode {
	return f(ctx)
}

type funcVariant struct {
	name  string
	mount func(ctx Context) (Renderer, error)
}

func (v *funcVariant) Name() string { return v.name }

func (v *funcVariant) Mount(ctx Context) (Renderer, error) { return v.mount(ctx) }

// NewVariant creates a Variant from a name and a mount function.
func NewVariant(name string, mount func(ctx Context) (Renderer, error)) Variant {
	return &funcVariant{name: name, mount: mount}
}

// Stateless creates a Variant whose instances all share render.
func Stateless(name string, render RenderFunc) Variant {
	return NewVariant(name, func(Context) (Renderer, error) {
		return render, nil
	})
}

// missing builds the error returned for an absent required parameter.
func missing(variant, param, column string) error {
	if column == "" {
		return fmt.Errorf("%s: %w %q", variant, ErrMissingConfig, param)
	}
	return fmt.Errorf("%s on column %q: %w %q", variant, column, ErrMissingConfig, param)
}
