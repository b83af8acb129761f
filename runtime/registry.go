package runtime

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vcrobe/nojs-blocks/blockspec"
	"github.com/vcrobe/nojs-blocks/markup"
)

// ErrViewNotFound is returned when no view is registered under a name.
var ErrViewNotFound = errors.New("view not found")

// Entry is a named view: its template and a factory for a fresh model.
// A nil Model gives the view a nil model.
type Entry struct {
	Name     string
	Template *blockspec.Spec
	Model    func() any
}

// Registry maps view-reference names to entries.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds or replaces the view name.
func (r *Registry) Register(name string, template *blockspec.Spec, model func() any) {
	r.RegisterViews([]Entry{{Name: name, Template: template, Model: model}})
}

// RegisterViews adds entries keyed by their Name.
func (r *Registry) RegisterViews(entries []Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range entries {
		e := entries[i]
		r.entries[e.Name] = &e
	}
}

// RegisterMarkup parses src as a template and registers it under name.
func (r *Registry) RegisterMarkup(name, src string, model func() any) error {
	spec, err := markup.Parse(src, markup.Options{Name: name})
	if err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}
	r.Register(name, spec, model)
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	return e, ok
}

// Names lists the registered names in order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create instantiates the view registered under name with a fresh model.
func (r *Registry) Create(name string, opts ...Option) (*View, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("create %q: %w", name, ErrViewNotFound)
	}
	var model any
	if e.Model != nil {
		model = e.Model()
	}
	opts = append([]Option{WithName(name), WithRegistry(r)}, opts...)
	return New(model, e.Template, opts...), nil
}
