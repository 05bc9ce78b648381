package celltest

import (
	"testing"

	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	if got := RenderToString(vdom.Span("hi")); got != "<span>hi</span>" {
		t.Errorf("got %q", got)
	}
	if got := RenderToString(nil); got != "" {
		t.Errorf("nil node rendered %q", got)
	}
}

func TestExpectHelpers(t *testing.T) {
	node := vdom.Div(vdom.Class("x"), vdom.Img(), vdom.Img(), "text")

	ExpectContains(t, node, "text")
	ExpectNotContains(t, node, "missing")
	ExpectAttribute(t, node, "class", "x")
	ExpectCount(t, node, "img", 2)
	ExpectEmpty(t, nil)
}

func TestClickAndRecorder(t *testing.T) {
	inst := Mount(t, cell.Button{}, cell.Context{Value: "v", Column: "c"})

	var rec Recorder
	rec.Listen(t, inst)

	if !Click(inst.Render(cell.Context{Value: "v"})) {
		t.Fatal("expected a click handler")
	}
	if len(rec.Events) != 1 || rec.Last().Value != "v" {
		t.Errorf("events = %+v", rec.Events)
	}
	if Click(vdom.Span("static")) {
		t.Error("static node should have no handler")
	}
	if (&Recorder{}).Last() != (cell.ClickEvent{}) {
		t.Error("empty recorder should return zero event")
	}
}
