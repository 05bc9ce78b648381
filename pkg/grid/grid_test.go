package grid

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/celltest"
	"github.com/vango-dev/gridcell/pkg/middleware"
	"github.com/vango-dev/gridcell/pkg/vdom"
)

func testColumns() []ColumnDef {
	return []ColumnDef{
		{Field: "name", Header: "Name", Renderer: "groupStyle"},
		{Field: "stars", Renderer: "repeatIcon", Params: map[string]any{"rendererImage": "sun.png"}},
		{Field: "color", Renderer: "swatch"},
		{Field: "buy", Renderer: "button", Params: map[string]any{"label": "Buy"}},
	}
}

func testRows() []cell.RowNode {
	return []cell.RowNode{
		{ID: "g1", Group: true, Data: map[string]any{"name": "Fruit", "stars": 0}},
		{ID: "r1", Data: map[string]any{"name": "Apple", "stars": 3, "color": "red", "buy": "apple"}},
		{ID: "r2", Data: map[string]any{"name": "Pear", "stars": "2", "color": nil, "buy": "pear"}},
	}
}

func newTestGrid(t *testing.T, opts ...Option) *Grid {
	t.Helper()
	g, err := New(testColumns(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.SetRows(testRows()); err != nil {
		t.Fatalf("SetRows: %v", err)
	}
	return g
}

func TestNewValidatesColumns(t *testing.T) {
	tests := []struct {
		name string
		cols []ColumnDef
		code string
	}{
		{"empty", nil, "E102"},
		{"no field", []ColumnDef{{Header: "x"}}, "E102"},
		{"duplicate", []ColumnDef{{Field: "a"}, {Field: "a"}}, "E103"},
		{"unknown renderer", []ColumnDef{{Field: "a", Renderer: "sparkline"}}, "E200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols)
			if got := errors.Code(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestSetRowsMissingConfig(t *testing.T) {
	g, err := New([]ColumnDef{{Field: "stars", Renderer: "repeatIcon"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = g.SetRows([]cell.RowNode{{ID: "r1", Data: map[string]any{"stars": 2}}})
	if errors.Code(err) != "E201" {
		t.Fatalf("expected E201, got %v", err)
	}
	ge, _ := err.(*errors.Error)
	if ge == nil || ge.Suggestion == "" {
		t.Error("missing-config error should carry a suggestion")
	}
	if len(g.Rows()) != 0 {
		t.Error("failed SetRows must leave the grid unchanged")
	}
}

func TestSetRowsDuplicateID(t *testing.T) {
	g, _ := New(testColumns())
	err := g.SetRows([]cell.RowNode{{ID: "a"}, {ID: "a"}})
	if errors.Code(err) != "E204" {
		t.Errorf("expected E204, got %v", err)
	}
}

func TestSetRowsAssignsMissingIDs(t *testing.T) {
	g, _ := New([]ColumnDef{{Field: "a"}})
	if err := g.SetRows([]cell.RowNode{{}, {}}); err != nil {
		t.Fatalf("SetRows: %v", err)
	}
	if _, ok := g.Row("row-1"); !ok {
		t.Error("expected generated ID row-1")
	}
}

func TestRenderTable(t *testing.T) {
	g := newTestGrid(t)
	table := g.Render()

	celltest.ExpectCount(t, table, "tr", 4)
	celltest.ExpectCount(t, table, "th", 4)
	celltest.ExpectContains(t, table, `<th data-field="name" scope="col">Name</th>`)
	celltest.ExpectContains(t, table, `<th data-field="stars" scope="col">stars</th>`)
	celltest.ExpectAttribute(t, table, "class", "gc-row-group")

	// Apple has 3 stars, Pear 2, the group row none.
	celltest.ExpectCount(t, table, "img", 5)
	for _, img := range vdom.FindAll(table, "img") {
		if img.GetAttr("src") != "/images/sun.png" {
			t.Errorf("src = %q", img.GetAttr("src"))
		}
	}

	// Only Apple has a color.
	if got := len(findByClass(table, "gc-swatch-chip")); got != 1 {
		t.Errorf("swatch chips = %d, want 1", got)
	}

	html := celltest.RenderToString(table)
	if strings.Count(html, "data-hid=") != 3 {
		t.Errorf("expected one hydrated button per row:\n%s", html)
	}
}

func TestDispatchEmitsClick(t *testing.T) {
	m := middleware.NewMetrics(middleware.WithRegistry(prometheus.NewRegistry()))
	g := newTestGrid(t, WithMetrics(m))

	var got []cell.ClickEvent
	g.OnClick(func(e cell.ClickEvent) { got = append(got, e) })

	table := g.Render()
	btn := buttonInRow(t, table, "r1")

	if err := g.Dispatch(btn.HID); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	want := cell.ClickEvent{Value: "apple", RowID: "r1", Column: "buy"}
	if got[0] != want {
		t.Errorf("event = %+v, want %+v", got[0], want)
	}
	if s := g.Stats(); s.Dispatches != 1 || s.Renders != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestDispatchUsesCurrentValue(t *testing.T) {
	g := newTestGrid(t)

	var last cell.ClickEvent
	g.OnClick(func(e cell.ClickEvent) { last = e })

	if err := g.SetCell("r1", "buy", "green apple"); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	table := g.Render()
	if err := g.Dispatch(buttonInRow(t, table, "r1").HID); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if last.Value != "green apple" {
		t.Errorf("payload = %v", last.Value)
	}
}

func TestDispatchUnknownHID(t *testing.T) {
	g := newTestGrid(t)
	g.Render()

	for _, hid := range []string{"", "h99", "nope"} {
		if err := g.Dispatch(hid); errors.Code(err) != "E202" {
			t.Errorf("Dispatch(%q) = %v, want E202", hid, err)
		}
	}
}

func TestDispatchWithoutListener(t *testing.T) {
	g := newTestGrid(t)
	table := g.Render()
	if err := g.Dispatch(buttonInRow(t, table, "r2").HID); err != nil {
		t.Errorf("dispatch without listener: %v", err)
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	g := newTestGrid(t)
	g.OnClick(func(cell.ClickEvent) { panic("boom") })

	table := g.Render()
	err := g.Dispatch(buttonInRow(t, table, "r1").HID)
	if errors.Code(err) != "E206" {
		t.Errorf("expected E206, got %v", err)
	}
}

func TestGroupStyleCachedUntilRemount(t *testing.T) {
	g := newTestGrid(t)

	if err := g.SetGroup("r1", true); err != nil {
		t.Fatalf("SetGroup: %v", err)
	}
	if class := styledClass(t, g.Render(), "r1"); class != "gc-styled gc-leaf" {
		t.Errorf("before remount: class = %q", class)
	}

	if err := g.Remount("r1"); err != nil {
		t.Fatalf("Remount: %v", err)
	}
	if class := styledClass(t, g.Render(), "r1"); class != "gc-styled gc-group" {
		t.Errorf("after remount: class = %q", class)
	}
}

func TestSetRowsKeepsAndDestroysInstances(t *testing.T) {
	g := newTestGrid(t)

	var events int
	g.OnClick(func(cell.ClickEvent) { events++ })
	before, _ := g.Instance("r1", "buy")
	stale := g.Render()

	rows := testRows()[:2]
	rows[1].Data["name"] = "Apple (renamed)"
	if err := g.SetRows(rows); err != nil {
		t.Fatalf("SetRows: %v", err)
	}

	after, _ := g.Instance("r1", "buy")
	if before != after {
		t.Error("existing row should keep its instance")
	}
	if _, ok := g.Instance("r2", "buy"); ok {
		t.Error("removed row should have no instances")
	}

	// The removed button was destroyed, so its old handler is inert.
	celltest.Click(buttonInRow(t, stale, "r2"))
	if events != 0 {
		t.Errorf("destroyed instance emitted %d events", events)
	}
	if s := g.Stats(); s.Rows != 2 || s.Mounted != 8 || s.Interactive != 2 {
		t.Errorf("stats = %+v", s)
	}
}

func TestDispatchStaleHIDAfterRowRemoved(t *testing.T) {
	g := newTestGrid(t)

	var events int
	g.OnClick(func(cell.ClickEvent) { events++ })
	stale := buttonInRow(t, g.Render(), "r2").HID

	if err := g.SetRows(testRows()[:2]); err != nil {
		t.Fatalf("SetRows: %v", err)
	}
	if err := g.Dispatch(stale); errors.Code(err) != "E202" {
		t.Errorf("Dispatch(stale) = %v, want E202", err)
	}
	if events != 0 {
		t.Errorf("stale dispatch emitted %d events", events)
	}

	if err := g.Dispatch(buttonInRow(t, g.Render(), "r1").HID); err != nil {
		t.Fatalf("Dispatch after re-render: %v", err)
	}
	if events != 1 {
		t.Errorf("events = %d, want 1", events)
	}
}

func TestDispatchStaleHIDAfterRemount(t *testing.T) {
	g := newTestGrid(t)
	stale := buttonInRow(t, g.Render(), "r1").HID

	if err := g.Remount("r1"); err != nil {
		t.Fatalf("Remount: %v", err)
	}
	if err := g.Dispatch(stale); errors.Code(err) != "E202" {
		t.Errorf("Dispatch(stale) = %v, want E202", err)
	}
}

func TestRowDataIsCopied(t *testing.T) {
	g, err := New(testColumns())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rows := testRows()
	if err := g.SetRows(rows); err != nil {
		t.Fatalf("SetRows: %v", err)
	}

	if err := g.SetCell("r1", "name", "after"); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	if got := rows[1].Data["name"]; got != "Apple" {
		t.Errorf("SetCell wrote through to caller's map: name = %v", got)
	}

	rows[1].Data["name"] = "caller edit"
	snap, _ := g.Row("r1")
	if got := snap.Data["name"]; got != "after" {
		t.Errorf("caller edit reached the grid: name = %v", got)
	}

	snap.Data["name"] = "snapshot edit"
	g.Rows()[1].Data["name"] = "rows edit"
	if again, _ := g.Row("r1"); again.Data["name"] != "after" {
		t.Errorf("returned copy aliases the grid: name = %v", again.Data["name"])
	}
}

func TestSetCellErrors(t *testing.T) {
	g := newTestGrid(t)
	if err := g.SetCell("missing", "name", 1); errors.Code(err) != "E203" {
		t.Errorf("unknown row: %v", err)
	}
	if err := g.SetCell("r1", "missing", 1); errors.Code(err) != "E205" {
		t.Errorf("unknown column: %v", err)
	}
	if err := g.Remount("missing"); errors.Code(err) != "E203" {
		t.Errorf("remount unknown row: %v", err)
	}
}

func TestCloseDestroysEverything(t *testing.T) {
	g := newTestGrid(t)
	g.Render()
	g.Close()

	if s := g.Stats(); s.Rows != 0 || s.Mounted != 0 || s.Handlers != 0 {
		t.Errorf("stats after Close = %+v", s)
	}
}

func TestCaptionAndColumns(t *testing.T) {
	g, err := New([]ColumnDef{{Field: "a"}}, WithCaption("Inventory"), WithRegistry(cell.DefaultRegistry()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	celltest.ExpectContains(t, g.Render(), "<caption>Inventory</caption>")
	if cols := g.Columns(); len(cols) != 1 || cols[0].RendererName() != "text" || cols[0].Title() != "a" {
		t.Errorf("Columns() = %+v", cols)
	}
}

func buttonInRow(t *testing.T, table *vdom.VNode, rowID string) *vdom.VNode {
	t.Helper()
	for _, tr := range vdom.FindAll(table, "tr") {
		if tr.GetAttr("data-row") != rowID {
			continue
		}
		if btns := vdom.FindAll(tr, "button"); len(btns) == 1 {
			return btns[0]
		}
	}
	t.Fatalf("no button in row %q", rowID)
	return nil
}

func styledClass(t *testing.T, table *vdom.VNode, rowID string) string {
	t.Helper()
	for _, tr := range vdom.FindAll(table, "tr") {
		if tr.GetAttr("data-row") != rowID {
			continue
		}
		for _, span := range vdom.FindAll(tr, "span") {
			if strings.HasPrefix(span.GetAttr("class"), "gc-styled") {
				return span.GetAttr("class")
			}
		}
	}
	t.Fatalf("no styled span in row %q", rowID)
	return ""
}

func findByClass(node *vdom.VNode, class string) []*vdom.VNode {
	var out []*vdom.VNode
	vdom.Walk(node, func(n *vdom.VNode) bool {
		for _, c := range strings.Fields(n.GetAttr("class")) {
			if c == class {
				out = append(out, n)
			}
		}
		return true
	})
	return out
}
