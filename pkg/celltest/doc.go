// Package celltest provides helpers for testing cell renderers.
//
// It mounts a variant the way a host grid would, renders the result to
// HTML and offers small assertions over the output:
//
//	inst := celltest.Mount(t, cell.RepeatIcon{}, cell.Context{
//	    Value:  3,
//	    Params: cell.Params{"rendererImage": "sun.png"},
//	})
//	node := inst.Render(ctx)
//	celltest.ExpectCount(t, node, "img", 3)
//	celltest.ExpectAttribute(t, node, "src", "/images/sun.png")
//
// Clicks are simulated with Click, which invokes the handler bound to
// the first interactive element in the tree, and Recorder collects the
// events a renderer emits.
package celltest
