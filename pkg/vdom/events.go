package vdom

// ClickProp is the prop key under which click handlers are stored.
const ClickProp = "onclick"

// OnClick attaches a click handler. The handler is either func() or
// func(any); the renderer omits it from HTML and marks the element with
// data-on-click so the browser forwards clicks to the server.
func OnClick(handler any) EventHandler {
	return EventHandler{Event: ClickProp, Handler: handler}
}
