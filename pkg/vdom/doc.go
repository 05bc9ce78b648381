// Package vdom provides the virtual DOM that cell renderers produce.
//
// A renderer never touches a real document. It returns a VNode tree that
// the host grid places inside a table cell and hands to one of the
// backends in package render (HTML or terminal text).
//
// # Core Types
//
// VNode is the building block for elements, text, fragments, components
// and raw HTML. Props holds attributes and event handlers. Attr and
// EventHandler are produced by the helper functions in this package.
//
// # Element API
//
// Elements are created with variadic factory functions:
//
//	Span(Class("swatch"),
//	    Span(Styles("background-color", "red")),
//	    Text("red"),
//	)
//
// # Hydration
//
// AssignHIDs walks the tree and gives every interactive element (one
// with an event handler) a hydration ID. CollectHandlers returns the
// handlers keyed by "<hid>_<event>" so the host can route browser events
// back to the renderer that registered them.
package vdom
