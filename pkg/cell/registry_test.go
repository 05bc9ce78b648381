package cell_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/celltest"
	"github.com/vango-dev/gridcell/pkg/vdom"
)

func TestDefaultRegistry(t *testing.T) {
	reg := cell.DefaultRegistry()

	want := []string{"button", "groupStyle", "repeatIcon", "swatch", "text"}
	if got := reg.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	for _, name := range want {
		v, ok := reg.Lookup(name)
		if !ok || v.Name() != name {
			t.Errorf("Lookup(%q) = %v, %v", name, v, ok)
		}
	}

	if v, ok := reg.Lookup(""); !ok || v.Name() != cell.TextName {
		t.Errorf("empty name should resolve to text, got %v", v)
	}
	if _, ok := reg.Lookup("sparkline"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestRegistryRegister(t *testing.T) {
	reg := cell.NewRegistry()

	badge := cell.Stateless("badge", func(ctx cell.Context) *vdom.VNode {
		return vdom.Span(vdom.Class("badge"), cell.Stringify(ctx.Value))
	})
	if err := reg.Register(badge); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(badge); err == nil {
		t.Error("duplicate registration should fail")
	}
	if err := reg.Register(cell.Stateless("", nil)); err == nil {
		t.Error("empty name should fail")
	}
	if _, ok := reg.Lookup(""); ok {
		t.Error("empty registry has no text fallback")
	}

	v, _ := reg.Lookup("badge")
	ctx := cell.Context{Value: "new"}
	celltest.ExpectContains(t, celltest.Mount(t, v, ctx).Render(ctx), `<span class="badge">new</span>`)
}

func TestNewVariantMountError(t *testing.T) {
	v := cell.NewVariant("strict", func(ctx cell.Context) (cell.Renderer, error) {
		return nil, cell.ErrMissingConfig
	})
	if _, err := v.Mount(cell.Context{}); !errors.Is(err, cell.ErrMissingConfig) {
		t.Errorf("err = %v", err)
	}
}

func TestTextVariant(t *testing.T) {
	inst := celltest.Mount(t, cell.Text{}, cell.Context{})

	celltest.ExpectContains(t, inst.Render(cell.Context{Value: 12.5}), "12.5")
	celltest.ExpectContains(t, inst.Render(cell.Context{Value: "<b>"}), "&lt;b&gt;")
	if inst.Render(cell.Context{Value: nil}) != nil {
		t.Error("nil value should render nothing")
	}
}

func TestContextHelpers(t *testing.T) {
	var ctx cell.Context
	if ctx.IsGroup() || ctx.RowID() != "" {
		t.Error("zero context has no row")
	}
	ctx.Node = &cell.RowNode{ID: "r1", Group: true}
	if !ctx.IsGroup() || ctx.RowID() != "r1" {
		t.Error("context should reflect its row")
	}
}

func TestDescribe(t *testing.T) {
	reg := cell.DefaultRegistry()
	for _, name := range reg.Names() {
		v, _ := reg.Lookup(name)
		if cell.Describe(v).Summary == "" {
			t.Errorf("%s has no summary", name)
		}
	}

	repeat, _ := reg.Lookup(cell.RepeatIconName)
	if params := cell.Describe(repeat).Params; len(params) == 0 || params[0] != "rendererImage (required)" {
		t.Errorf("repeatIcon params = %v", params)
	}

	plain := cell.Stateless("plain", func(cell.Context) *vdom.VNode { return nil })
	if d := cell.Describe(plain); d.Summary != "" || d.Params != nil {
		t.Errorf("undocumented variant described as %+v", d)
	}
}
