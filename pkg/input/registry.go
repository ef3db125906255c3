package input

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrUnknownType is returned when an input type has not been registered.
	ErrUnknownType = errors.New("unknown input type")
	// ErrInvalidType is returned when a type is missing its name.
	ErrInvalidType = errors.New("invalid input type")
)

// Renderer turns a leaf into control markup.
type Renderer func(*Leaf) string

// Type describes an input type. Hidden types produce leaves that render
// outside the table.
type Type struct {
	Name   string
	Hidden bool
	Render Renderer
}

// Registry tracks input types keyed by name. Registering an existing name
// replaces it.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// DefaultRegistry returns a new registry holding the built-in types.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	registerBuiltins(reg)
	return reg
}

// Register adds or replaces a type.
func (r *Registry) Register(t Type) error {
	name := normalize(t.Name)
	if name == "" {
		return fmt.Errorf("input: register type: %w", ErrInvalidType)
	}
	if t.Render == nil {
		return fmt.Errorf("input: register type %q: renderer is nil: %w", name, ErrInvalidType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t.Name = name
	r.types[name] = t
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(t Type) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Lookup fetches a type by name.
func (r *Registry) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[normalize(name)]
	return t, ok
}

// Has reports whether a type is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// New builds a leaf of the named type.
func (r *Registry) New(typeName, name string) (*Leaf, error) {
	t, ok := r.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("input: %q: %w", typeName, ErrUnknownType)
	}
	return NewLeaf(t, name), nil
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone returns a copy that can be extended without touching the original.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cloned := NewRegistry()
	for name, t := range r.types {
		cloned.types[name] = t
	}
	return cloned
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
