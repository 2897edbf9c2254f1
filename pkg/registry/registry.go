// Package registry maps stable names to shared runtime values: component
// definitions, events, and templates.
//
// A Registry is built once at startup, treated as read-only afterward, and
// passed by reference to whatever needs to resolve names to handles. There
// is no process-wide registry; hosts that want several isolated namespaces
// build several registries.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/graft"
)

// DuplicateDefinitionError reports a registration under an already-taken
// name. Registrations never overwrite.
type DuplicateDefinitionError struct {
	Kind string // "component", "event" or "template"
	Name string
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("%s %q already registered", e.Kind, e.Name)
}

// Registry resolves names to definitions, events, and templates.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*graft.Component
	events     map[string]*graft.Event
	templates  map[string]*graft.Template
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]*graft.Component),
		events:     make(map[string]*graft.Event),
		templates:  make(map[string]*graft.Template),
	}
}

// AddComponent registers def under name.
func (r *Registry) AddComponent(name string, def *graft.Component) error {
	if def == nil {
		return fmt.Errorf("register component %q: nil definition", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.components[name]; ok {
		return &DuplicateDefinitionError{Kind: "component", Name: name}
	}
	r.components[name] = def
	return nil
}

// AddEvent registers ev under name.
func (r *Registry) AddEvent(name string, ev *graft.Event) error {
	if ev == nil {
		return fmt.Errorf("register event %q: nil event", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[name]; ok {
		return &DuplicateDefinitionError{Kind: "event", Name: name}
	}
	r.events[name] = ev
	return nil
}

// AddTemplate registers t under name.
func (r *Registry) AddTemplate(name string, t *graft.Template) error {
	if t == nil {
		return fmt.Errorf("register template %q: nil template", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[name]; ok {
		return &DuplicateDefinitionError{Kind: "template", Name: name}
	}
	r.templates[name] = t
	return nil
}

// Component resolves a component definition by name.
func (r *Registry) Component(name string) (*graft.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.components[name]
	return def, ok
}

// Event resolves an event by name.
func (r *Registry) Event(name string) (*graft.Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ev, ok := r.events[name]
	return ev, ok
}

// Template resolves a template by name.
func (r *Registry) Template(name string) (*graft.Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	return t, ok
}

// ComponentNames returns the registered component names in sorted order.
func (r *Registry) ComponentNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.components)
}

// EventNames returns the registered event names in sorted order.
func (r *Registry) EventNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.events)
}

// TemplateNames returns the registered template names in sorted order.
func (r *Registry) TemplateNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.templates)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys
}
