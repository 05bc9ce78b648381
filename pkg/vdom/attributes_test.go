package vdom

import "testing"

func TestStyles(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
		want  Attr
	}{
		{
			name:  "ordered pairs",
			pairs: []string{"color", "red", "font-weight", "bold"},
			want:  Attr{Key: "style", Value: "color:red;font-weight:bold"},
		},
		{
			name:  "dangling property dropped",
			pairs: []string{"color", "red", "margin"},
			want:  Attr{Key: "style", Value: "color:red"},
		},
		{
			name:  "empty value dropped",
			pairs: []string{"color", "", "width", "10px"},
			want:  Attr{Key: "style", Value: "width:10px"},
		},
		{
			name:  "nothing left",
			pairs: []string{"color", ""},
			want:  Attr{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Styles(tt.pairs...); got != tt.want {
				t.Errorf("Styles() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestClassHelpers(t *testing.T) {
	if got := Class("a", "b"); got.Value != "a b" {
		t.Errorf("Class = %v, want \"a b\"", got.Value)
	}
	if got := ClassIf(false, "x"); !got.IsEmpty() {
		t.Errorf("ClassIf(false) = %v, want empty", got)
	}
	if got := ClassIf(true, "x"); got.Value != "x" {
		t.Errorf("ClassIf(true) = %v, want x", got.Value)
	}
}

func TestKeyStringifies(t *testing.T) {
	if got := Key(42); got.Value != "42" {
		t.Errorf("Key(42) = %v, want \"42\"", got.Value)
	}
}
