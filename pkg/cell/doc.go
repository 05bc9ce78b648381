// Package cell defines the contract between a host grid and the
// renderers that draw its cells.
//
// The host picks a Variant per column (by name, through a Registry) and
// calls Mount once for every cell it shows. Mount returns a Renderer
// instance that lives until the host recycles the cell. Each time the
// cell is drawn the host calls Render with the current Context and
// places the returned VNode inside the cell; a nil node draws nothing.
//
// Renderers that can report user interaction implement Interactive. The
// host registers a Listener and the renderer calls it synchronously,
// once per activation, with a ClickEvent carrying the cell value.
//
//	reg := cell.DefaultRegistry()
//	v, _ := reg.Lookup("repeatIcon")
//	r, err := v.Mount(cell.Context{Value: 3, Params: cell.Params{"rendererImage": "sun.png"}})
//	if err != nil {
//	    return err // missing rendererImage
//	}
//	node := r.Render(ctx) // <span> with three <img src="/images/sun.png">
//
// Renderers never mutate the Context, never block and never touch
// anything outside the VNode they return.
package cell
