package cell

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps renderer names used in column definitions to variants.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]Variant
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{variants: make(map[string]Variant)}
}

// DefaultRegistry creates a registry holding the built-in variants.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, v := range []Variant{Text{}, Button{}, RepeatIcon{}, GroupStyle{}, Swatch{}} {
		r.variants[v.Name()] = v
	}
	return r
}

// Register adds a variant. Names must be unique and non-empty.
func (r *Registry) Register(v Variant) error {
	name := v.Name()
	if name == "" {
		return fmt.Errorf("cell: variant name is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.variants[name]; exists {
		return fmt.Errorf("cell: variant %q already registered", name)
	}
	r.variants[name] = v
	return nil
}

// Lookup returns the variant registered under name. An empty name
// resolves to the text variant if it is registered.
func (r *Registry) Lookup(name string) (Variant, bool) {
	if name == "" {
		name = TextName
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variants[name]
	return v, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
