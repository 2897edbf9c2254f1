package graft

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/graft/internal/logging"
	"github.com/aretw0/graft/pkg/deepcopy"
)

// Bin is an entity: a container of component instances plus the per-event
// listener lists that route announcements to them. A bin exclusively owns
// its instances and listener lists; definitions and events are shared.
//
// Bins are not safe for concurrent use. The runtime is single-threaded
// and synchronous throughout.
type Bin struct {
	id         string
	components map[ComponentID]*Instance
	order      []ComponentID // attach order
	listeners  map[EventID][]*Component
	logger     *slog.Logger
	hooks      Hooks
}

// NewBin creates an empty bin.
func NewBin(opts ...Option) *Bin {
	b := &Bin{
		id:         uuid.NewString()[:8],
		components: make(map[ComponentID]*Instance),
		listeners:  make(map[EventID][]*Component),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	b.logger = b.logger.With("bin", b.id)
	return b
}

// ID returns the bin's short random identifier, used in logs and hook
// events.
func (b *Bin) ID() string { return b.id }

// AddComponent attaches def to the bin and runs its Init with cfg. The
// instance is reachable through GetComponent before Init runs, so an Init
// may register listeners or look up sibling components. An Init error
// detaches the half-built instance again and is returned wrapped.
func (b *Bin) AddComponent(def *Component, cfg any) (*Instance, error) {
	if def == nil {
		return nil, fmt.Errorf("add component: nil definition")
	}
	if _, ok := b.components[def.id]; ok {
		return nil, &DuplicateComponentError{Component: def.name}
	}
	inst := &Instance{bin: b, def: def}
	b.components[def.id] = inst
	b.order = append(b.order, def.id)
	if def.init != nil {
		if err := def.init(inst, cfg); err != nil {
			b.strip(def)
			return nil, fmt.Errorf("init component %q: %w", def.name, err)
		}
	}
	b.logger.Debug("component attached", "component", def.name)
	if b.hooks.OnAttach != nil {
		b.hooks.OnAttach(&AttachEvent{Bin: b.id, Component: def.name})
	}
	return inst, nil
}

// RemoveComponent detaches def. Its Destruct runs first, while the
// instance is still attached and may announce; then every listener
// registration of def is stripped across all events and the instance
// dropped. Removing an absent definition is a no-op.
func (b *Bin) RemoveComponent(def *Component) {
	if def == nil {
		return
	}
	inst, ok := b.components[def.id]
	if !ok || inst.detaching {
		return
	}
	inst.detaching = true
	if def.destruct != nil {
		def.destruct(inst)
	}
	b.strip(def)
	b.logger.Debug("component detached", "component", def.name)
	if b.hooks.OnDetach != nil {
		b.hooks.OnDetach(&AttachEvent{Bin: b.id, Component: def.name})
	}
}

// GetComponent returns def's instance, or nil when absent.
func (b *Bin) GetComponent(def *Component) *Instance {
	if def == nil {
		return nil
	}
	return b.components[def.id]
}

// HasComponent reports whether def is attached.
func (b *Bin) HasComponent(def *Component) bool {
	return b.GetComponent(def) != nil
}

// ExpectComponent returns def's instance and fails with
// ComponentNotFoundError when absent.
func (b *Bin) ExpectComponent(def *Component) (*Instance, error) {
	if def == nil {
		return nil, fmt.Errorf("expect component: nil definition")
	}
	inst, ok := b.components[def.id]
	if !ok {
		return nil, &ComponentNotFoundError{Component: def.name}
	}
	return inst, nil
}

// ForceComponent returns the existing instance or attaches def with cfg.
func (b *Bin) ForceComponent(def *Component, cfg any) (*Instance, error) {
	if inst := b.GetComponent(def); inst != nil {
		return inst, nil
	}
	return b.AddComponent(def, cfg)
}

// Components returns the attached definitions in attach order.
func (b *Bin) Components() []*Component {
	out := make([]*Component, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.components[id].def)
	}
	return out
}

// AddListener registers def as a listener for ev in this bin; dispatch
// order is registration order. Registering the same definition twice for
// one event fails with DuplicateListenerError. The definition does not
// have to be attached yet, but must be by the time ev is announced.
func (b *Bin) AddListener(ev *Event, def *Component) error {
	if ev == nil || def == nil {
		return fmt.Errorf("add listener: nil event or definition")
	}
	for _, d := range b.listeners[ev.id] {
		if d.id == def.id {
			return &DuplicateListenerError{Event: ev.name, Component: def.name}
		}
	}
	b.listeners[ev.id] = append(b.listeners[ev.id], def)
	return nil
}

// RemoveListener removes def's registration for ev. No-op when not
// registered.
func (b *Bin) RemoveListener(ev *Event, def *Component) {
	if ev == nil || def == nil {
		return
	}
	regs := b.listeners[ev.id]
	for i, d := range regs {
		if d.id == def.id {
			b.listeners[ev.id] = append(regs[:i], regs[i+1:]...)
			return
		}
	}
}

// Announce dispatches ev across this bin's listener list in registration
// order, folding the listeners' results through the event's reducer. With
// no registrations it returns the event's default value.
//
// Reentrancy is legal: a listener may announce on this or another bin.
// Mutating this event's listener list on this bin while its dispatch is
// running is undefined behavior; the list is not snapshotted.
func (b *Bin) Announce(ev *Event, args ...any) (result any, err error) {
	if ev == nil {
		return nil, fmt.Errorf("announce: nil event")
	}
	regs := b.listeners[ev.id]
	if b.hooks.OnAnnounce != nil {
		start := time.Now()
		defer func() {
			b.hooks.OnAnnounce(&AnnounceEvent{
				Bin:       b.id,
				Event:     ev.name,
				Listeners: len(regs),
				Duration:  time.Since(start),
				Err:       err,
			})
		}()
	}
	b.logger.Debug("announce", "event", ev.name, "listeners", len(regs))
	if len(regs) == 0 {
		return ev.fallback, nil
	}
	reduce := ev.reducer
	if reduce == nil {
		reduce = None
	}
	var acc any
	for i, def := range regs {
		inst, ok := b.components[def.id]
		if !ok {
			return nil, &DetachedListenerError{Event: ev.name, Component: def.name, Index: i + 1}
		}
		fn, ok := def.listeners[ev.id]
		if !ok {
			return nil, &MissingListenerImplementationError{Event: ev.name, Component: def.name, Index: i + 1}
		}
		if b.hooks.OnListener != nil {
			b.hooks.OnListener(&ListenerEvent{Bin: b.id, Event: ev.name, Component: def.name, Index: i + 1})
		}
		value, lerr := fn(inst, args...)
		if lerr != nil {
			return nil, fmt.Errorf("event %q: listener %q: %w", ev.name, def.name, lerr)
		}
		if ev.checker != nil {
			if cerr := ev.checker.Validate(value); cerr != nil {
				return nil, &TypeCheckViolationError{
					Event:     ev.name,
					Component: def.name,
					Index:     i + 1,
					Value:     value,
					Cause:     cerr,
				}
			}
		}
		if acc, err = reduce(acc, value, i+1, inst); err != nil {
			return nil, fmt.Errorf("event %q: reducer: %w", ev.name, err)
		}
	}
	return acc, nil
}

// Discard tears the bin down: every instance is removed in reverse attach
// order, running destructors. The bin is empty but usable afterward.
func (b *Bin) Discard() {
	snap := make([]ComponentID, len(b.order))
	copy(snap, b.order)
	for i := len(snap) - 1; i >= 0; i-- {
		if inst, ok := b.components[snap[i]]; ok {
			b.RemoveComponent(inst.def)
		}
	}
	b.logger.Debug("bin discarded")
}

// Clone builds a new bin carrying the same definitions and listener
// registrations. Instance-local fields are deep-copied in a single pass,
// so structures shared between components stay shared inside the clone.
// Inits do not re-run and attach hooks do not fire; opts configure the
// new bin. Cloning fails if any instance-local value is outside the
// plain-data domain.
func (b *Bin) Clone(opts ...Option) (*Bin, error) {
	nb := NewBin(opts...)
	locals := make(map[ComponentID]map[string]any, len(b.order))
	for id, inst := range b.components {
		if len(inst.fields) > 0 {
			locals[id] = inst.fields
		}
	}
	copied, err := deepcopy.Copy(locals)
	if err != nil {
		return nil, fmt.Errorf("clone bin %s: %w", b.id, err)
	}
	fields := copied.(map[ComponentID]map[string]any)
	for _, id := range b.order {
		src := b.components[id]
		nb.components[id] = &Instance{bin: nb, def: src.def, fields: fields[id]}
		nb.order = append(nb.order, id)
	}
	for evID, regs := range b.listeners {
		if len(regs) > 0 {
			nb.listeners[evID] = append([]*Component(nil), regs...)
		}
	}
	return nb, nil
}

// strip drops def's mapping, attach-order slot, and every listener
// registration. No stale entries survive.
func (b *Bin) strip(def *Component) {
	delete(b.components, def.id)
	for i, id := range b.order {
		if id == def.id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	for evID, regs := range b.listeners {
		for i, d := range regs {
			if d.id == def.id {
				b.listeners[evID] = append(regs[:i], regs[i+1:]...)
				break
			}
		}
	}
}
