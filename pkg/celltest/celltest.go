package celltest

import (
	"strings"
	"testing"

	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/render"
	"github.com/vango-dev/gridcell/pkg/vdom"
)

// Mount mounts v with ctx and fails the test if mounting fails.
func Mount(t testing.TB, v cell.Variant, ctx cell.Context) cell.Renderer {
	t.Helper()
	r, err := v.Mount(ctx)
	if err != nil {
		t.Fatalf("mount %s: %v", v.Name(), err)
	}
	if r == nil {
		t.Fatalf("mount %s: returned nil renderer", v.Name())
	}
	return r
}

// RenderToString renders a VNode and returns the HTML string. Render
// errors yield "".
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectEmpty asserts that node renders nothing.
func ExpectEmpty(t testing.TB, node *vdom.VNode) {
	t.Helper()
	if html := RenderToString(node); html != "" {
		t.Errorf("expected empty output, got:\n%s", truncate(html, 500))
	}
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts that some element carries attr="value".
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectCount asserts the number of elements with the given tag.
func ExpectCount(t testing.TB, node *vdom.VNode, tag string, want int) {
	t.Helper()
	if got := len(vdom.FindAll(node, tag)); got != want {
		t.Errorf("expected %d <%s> elements, got %d:\n%s", want, tag, got, truncate(RenderToString(node), 500))
	}
}

// Click invokes the click handler of the first interactive element in
// node. It reports whether a handler was found.
func Click(node *vdom.VNode) bool {
	var handler any
	vdom.Walk(node, func(n *vdom.VNode) bool {
		if handler != nil {
			return false
		}
		if h, ok := n.Props["onclick"]; ok && h != nil {
			handler = h
			return false
		}
		return true
	})
	switch h := handler.(type) {
	case func():
		h()
		return true
	case func(any):
		h(nil)
		return true
	}
	return false
}

// Recorder collects click events emitted by a renderer.
type Recorder struct {
	Events []cell.ClickEvent
}

// Listen registers the recorder on r, which must be interactive.
func (rec *Recorder) Listen(t testing.TB, r cell.Renderer) {
	t.Helper()
	ir, ok := r.(cell.Interactive)
	if !ok {
		t.Fatalf("renderer %T is not interactive", r)
	}
	ir.OnInteraction(func(e cell.ClickEvent) {
		rec.Events = append(rec.Events, e)
	})
}

// Last returns the most recent event, or the zero event.
func (rec *Recorder) Last() cell.ClickEvent {
	if len(rec.Events) == 0 {
		return cell.ClickEvent{}
	}
	return rec.Events[len(rec.Events)-1]
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
