package cell

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestIsNil(t *testing.T) {
	var p *int
	var m map[string]any
	var s []int
	var f func()

	tests := []struct {
		v    any
		want bool
	}{
		{nil, true},
		{p, true},
		{m, true},
		{s, true},
		{f, true},
		{0, false},
		{"", false},
		{false, false},
		{new(int), false},
	}
	for _, tt := range tests {
		if got := IsNil(tt.v); got != tt.want {
			t.Errorf("IsNil(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestStringify(t *testing.T) {
	n := 42
	tests := []struct {
		v    any
		want string
	}{
		{nil, ""},
		{"red", "red"},
		{3, "3"},
		{2.5, "2.5"},
		{float32(0.25), "0.25"},
		{1e21, "1000000000000000000000"},
		{true, "true"},
		{json.Number("7"), "7"},
		{&n, "42"},
		{time.Second, "1s"},
	}
	for _, tt := range tests {
		if got := Stringify(tt.v); got != tt.want {
			t.Errorf("Stringify(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestToCount(t *testing.T) {
	three := 3
	tests := []struct {
		v    any
		want int
	}{
		{nil, 0},
		{3, 3},
		{-1, 0},
		{2.99, 2},
		{-0.5, 0},
		{"3", 3},
		{"3.7", 3},
		{"x", 0},
		{json.Number("4"), 4},
		{&three, 3},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{math.Inf(-1), 0},
		{"Inf", 0},
		{"+Inf", 0},
		{"infinity", 0},
		{"NaN", 0},
		{"0x1p4", 0},
		{"1_000", 0},
		{"1e2", 100},
		{"-", 0},
		{uint64(math.MaxUint64), math.MaxInt32},
		{int64(math.MinInt64), 0},
		{[]int{1}, 0},
	}
	for _, tt := range tests {
		if got := ToCount(tt.v); got != tt.want {
			t.Errorf("ToCount(%#v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestParams(t *testing.T) {
	p := Params{"label": "Go", "n": "12", "empty": "", "bad": "x", "null": nil}

	if got := p.String("label", "d"); got != "Go" {
		t.Errorf("String(label) = %q", got)
	}
	for _, key := range []string{"empty", "null", "absent"} {
		if got := p.String(key, "d"); got != "d" {
			t.Errorf("String(%s) = %q, want default", key, got)
		}
	}
	if got := p.Int("n", 0); got != 12 {
		t.Errorf("Int(n) = %d", got)
	}
	if got := p.Int("bad", 7); got != 7 {
		t.Errorf("Int(bad) = %d, want default", got)
	}

	var nilParams Params
	if _, ok := nilParams.Lookup("x"); ok {
		t.Error("nil Params should have no keys")
	}

	merged := p.Merge(Params{"label": "Stop", "extra": 1})
	if merged["label"] != "Stop" || merged["extra"] != 1 || p["label"] != "Go" {
		t.Errorf("Merge = %v, original = %v", merged, p)
	}
}

func TestCSSValue(t *testing.T) {
	tests := map[string]string{
		"  red ":                    "red",
		"#abc":                      "#abc",
		"rgb(1, 2, 3)":              "rgb(1, 2, 3)",
		`red;background:url("x")`:   "redbackground:url(x)",
		"blue}body{color:red":       "bluebodycolor:red",
		"a\nb<c>":                   "abc",
	}
	for in, want := range tests {
		if got := cssValue(in); got != want {
			t.Errorf("cssValue(%q) = %q, want %q", in, got, want)
		}
	}
}
