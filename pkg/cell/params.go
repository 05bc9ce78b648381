package cell

// Params is per-column renderer configuration.
type Params map[string]any

// Lookup returns the raw value of key.
func (p Params) Lookup(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	return v, ok
}

// String returns key as display text, or def when it is absent or empty.
func (p Params) String(key, def string) string {
	v, ok := p.Lookup(key)
	if !ok || IsNil(v) {
		return def
	}
	if s := Stringify(v); s != "" {
		return s
	}
	return def
}

// Int returns key as an integer, or def when it is absent or not numeric.
func (p Params) Int(key string, def int) int {
	v, ok := p.Lookup(key)
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		return def
	}
	return n
}

// Merge returns a copy of p overlaid with other.
func (p Params) Merge(other Params) Params {
	out := make(Params, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
