// Package grid is a small host grid for cell renderers.
//
// A Grid owns its rows and one mounted renderer instance per cell. It
// renders a plain HTML table through the vdom package and routes clicks
// on hydrated elements back to the instance that rendered them:
//
//	g, err := grid.New([]grid.ColumnDef{
//	    {Field: "name", Header: "Name"},
//	    {Field: "stars", Renderer: "repeatIcon", Params: map[string]any{"rendererImage": "sun.png"}},
//	    {Field: "buy", Renderer: "button", Params: map[string]any{"label": "Buy"}},
//	})
//	g.OnClick(func(e cell.ClickEvent) { log.Println(e.RowID, e.Value) })
//	err = g.SetRows(rows)
//
//	tree := g.Render()       // assigns hydration IDs
//	err = g.Dispatch("h1")   // clicks the element rendered with data-hid="h1"
//
// The grid does not sort, filter or virtualize. It is not safe for
// concurrent use; callers serialize access, as the preview server does
// with its event loop.
package grid
