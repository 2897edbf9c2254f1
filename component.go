package graft

import (
	"fmt"
	"sync/atomic"
)

// ComponentID is the opaque handle minted for each definition. Bins key
// their instances by it; hosts should treat it as pure identity.
type ComponentID uint32

var componentIDs atomic.Uint32

// Listener implements an event for one component. It receives the
// instance attached to the announcing bin and the announce arguments, and
// returns the value handed to the event's reducer.
type Listener func(inst *Instance, args ...any) (any, error)

// Spec bundles everything a component definition carries.
type Spec struct {
	// Name identifies the component in logs and errors. Required.
	Name string

	// Defaults seeds the read-only fallback tier of every instance.
	// Instances see these values until they override a key locally.
	Defaults map[string]any

	// Init runs when the component attaches to a bin. cfg is the value
	// passed to AddComponent; DecodeArgs helps map it onto a typed
	// configuration struct.
	Init func(inst *Instance, cfg any) error

	// Destruct runs when the component detaches. The instance is still
	// attached and may announce.
	Destruct func(inst *Instance)

	// Listeners maps events to this component's implementations. The
	// table is fixed at definition time; bins choose per-bin which of
	// these registrations are active via AddListener.
	Listeners map[*Event]Listener
}

// Component is an immutable behavior definition. Definitions are created
// once by Define, shared by reference across bins, and never copied.
type Component struct {
	id        ComponentID
	name      string
	defaults  map[string]any
	init      func(*Instance, any) error
	destruct  func(*Instance)
	listeners map[EventID]Listener
}

// Define mints a new component definition from spec.
func Define(spec Spec) (*Component, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("define component: name is required")
	}
	c := &Component{
		id:       ComponentID(componentIDs.Add(1)),
		name:     spec.Name,
		init:     spec.Init,
		destruct: spec.Destruct,
	}
	if len(spec.Defaults) > 0 {
		c.defaults = make(map[string]any, len(spec.Defaults))
		for k, v := range spec.Defaults {
			c.defaults[k] = v
		}
	}
	if len(spec.Listeners) > 0 {
		c.listeners = make(map[EventID]Listener, len(spec.Listeners))
		for ev, fn := range spec.Listeners {
			if ev == nil || fn == nil {
				return nil, fmt.Errorf("define component %q: nil listener entry", spec.Name)
			}
			c.listeners[ev.id] = fn
		}
	}
	return c, nil
}

// MustDefine is Define for definitions built from literals. It panics on
// error.
func MustDefine(spec Spec) *Component {
	c, err := Define(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// ID returns the definition's opaque handle.
func (c *Component) ID() ComponentID { return c.id }

// Name returns the definition's debug name.
func (c *Component) Name() string { return c.name }

// Default returns the definition-level default for key.
func (c *Component) Default(key string) (any, bool) {
	v, ok := c.defaults[key]
	return v, ok
}

// ListensTo reports whether the definition implements ev.
func (c *Component) ListensTo(ev *Event) bool {
	if ev == nil {
		return false
	}
	_, ok := c.listeners[ev.id]
	return ok
}

// DeepCopyOpaque marks definitions as identity values: deep copy passes
// them through by reference.
func (c *Component) DeepCopyOpaque() {}
