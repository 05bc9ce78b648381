package grid

import (
	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/cell"
)

// ColumnDef describes one grid column.
type ColumnDef struct {
	// Field is the key into RowNode.Data. Required and unique.
	Field string `json:"field" yaml:"field"`

	// Header is the column title. Defaults to Field.
	Header string `json:"header,omitempty" yaml:"header,omitempty"`

	// Renderer names the cell variant. Defaults to "text".
	Renderer string `json:"renderer,omitempty" yaml:"renderer,omitempty"`

	// Params is passed to the renderer as Context.Params.
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Title returns the header text.
func (c ColumnDef) Title() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Field
}

// RendererName returns the variant name with the default applied.
func (c ColumnDef) RendererName() string {
	if c.Renderer == "" {
		return cell.TextName
	}
	return c.Renderer
}

// column is a ColumnDef with its variant resolved.
type column struct {
	def     ColumnDef
	variant cell.Variant
	params  cell.Params
}

// ValidateColumns checks column definitions against reg.
func ValidateColumns(cols []ColumnDef, reg *cell.Registry) error {
	_, err := resolveColumns(cols, reg)
	return err
}

func resolveColumns(cols []ColumnDef, reg *cell.Registry) ([]column, error) {
	if len(cols) == 0 {
		return nil, errors.New("E102")
	}
	seen := make(map[string]bool, len(cols))
	out := make([]column, 0, len(cols))
	for i, def := range cols {
		if def.Field == "" {
			return nil, errors.New("E102").
				WithDetailf("column %d has no field name.", i+1)
		}
		if seen[def.Field] {
			return nil, errors.New("E103").
				WithDetailf("Field %q is defined more than once.", def.Field)
		}
		seen[def.Field] = true

		v, ok := reg.Lookup(def.Renderer)
		if !ok {
			return nil, errors.New("E200").
				WithDetailf("Column %q uses renderer %q.", def.Field, def.Renderer).
				WithSuggestion("Run 'gridcell variants' to list the registered renderers.")
		}
		out = append(out, column{def: def, variant: v, params: cell.Params(def.Params)})
	}
	return out, nil
}
