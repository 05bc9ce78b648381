// Package render turns VNode trees into output.
//
// Two backends share the same input:
//
//   - Renderer writes HTML. Text and attribute values are escaped,
//     attributes are written in sorted order, and interactive elements
//     get a data-hid attribute plus data-on-<event> markers so the page
//     script can route events back to the server.
//   - TextRenderer writes ANSI text for terminals using lipgloss. Tables
//     become aligned columns, background colors become colored blocks
//     and images collapse to their alt text.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Full Page Rendering
//
//	err := renderer.RenderPage(w, render.PageData{
//	    Title:      "Inventory",
//	    Body:       grid.Render(),
//	    SocketPath: "/ws",
//	})
//
// # Security
//
// All text content and attribute values are escaped; there is no way
// to insert unescaped HTML.
package render
