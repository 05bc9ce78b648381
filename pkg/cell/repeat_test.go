package cell_test

import (
	"errors"
	"math"
	"testing"

	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/celltest"
	"github.com/vango-dev/gridcell/pkg/vdom"
)

func TestRepeatIconCount(t *testing.T) {
	params := cell.Params{"rendererImage": "sun.png"}
	inst := celltest.Mount(t, cell.RepeatIcon{}, cell.Context{Params: params})

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 3, 3},
		{"zero", 0, 0},
		{"negative", -2, 0},
		{"nil", nil, 0},
		{"numeric string", "4", 4},
		{"padded string", " 2 ", 2},
		{"non-numeric string", "many", 0},
		{"empty string", "", 0},
		{"fraction truncates", 2.9, 2},
		{"below one", 0.5, 0},
		{"NaN", math.NaN(), 0},
		{"float32", float32(1), 1},
		{"int64", int64(5), 5},
		{"uint8", uint8(2), 2},
		{"bool", true, 0},
		{"clamped", 1000, 100},
		{"infinite", math.Inf(1), 0},
		{"infinity string", "infinity", 0},
		{"hex float string", "0x1p4", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := inst.Render(cell.Context{Value: tt.value, Params: params})
			celltest.ExpectCount(t, node, "img", tt.want)
		})
	}
}

func TestRepeatIconSource(t *testing.T) {
	ctx := cell.Context{Value: 3, Params: cell.Params{"rendererImage": "sun.png"}}
	node := celltest.Mount(t, cell.RepeatIcon{}, ctx).Render(ctx)

	celltest.ExpectCount(t, node, "img", 3)
	for _, img := range vdom.FindAll(node, "img") {
		if got := img.GetAttr("src"); got != "/images/sun.png" {
			t.Errorf("src = %q, want /images/sun.png", got)
		}
	}
}

func TestRepeatIconParams(t *testing.T) {
	ctx := cell.Context{
		Value: 10,
		Params: cell.Params{
			"rendererImage": "star.svg",
			"basePath":      "https://cdn.example.com/i/",
			"maxRepeat":     "5",
			"alt":           "★",
		},
	}
	node := celltest.Mount(t, cell.RepeatIcon{}, ctx).Render(ctx)

	celltest.ExpectCount(t, node, "img", 5)
	celltest.ExpectAttribute(t, node, "src", "https://cdn.example.com/i/star.svg")
	celltest.ExpectAttribute(t, node, "alt", "★")
}

func TestRepeatIconMissingImage(t *testing.T) {
	tests := []struct {
		name   string
		params cell.Params
	}{
		{"no params", nil},
		{"absent", cell.Params{"basePath": "/x/"}},
		{"empty", cell.Params{"rendererImage": ""}},
		{"nil", cell.Params{"rendererImage": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := cell.RepeatIcon{}.Mount(cell.Context{Column: "stars", Params: tt.params})
			if !errors.Is(err, cell.ErrMissingConfig) {
				t.Fatalf("expected ErrMissingConfig, got %v", err)
			}
			if r != nil {
				t.Error("renderer should be nil on error")
			}
		})
	}
}

func TestRepeatIconNegativeLimit(t *testing.T) {
	ctx := cell.Context{Value: 3, Params: cell.Params{"rendererImage": "a.png", "maxRepeat": -1}}
	node := celltest.Mount(t, cell.RepeatIcon{}, ctx).Render(ctx)
	celltest.ExpectCount(t, node, "img", 0)
}
