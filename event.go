package graft

import (
	"sync/atomic"

	"github.com/aretw0/graft/pkg/check"
)

// EventID is the opaque handle minted for each declared event. Bins key
// their listener lists by it.
type EventID uint32

var eventIDs atomic.Uint32

// Event is a declared cross-component signal: identity, a reduction
// policy over listener results, an optional result checker, and a default
// value for when nobody listens. Events are declared once and shared by
// reference; the subscriber list lives in each bin, so the same event can
// have different listener sets per bin.
//
// The setters return the event for declaration-time chaining. Configure
// an event fully before its first announce; events hold no per-bin state
// and are treated as immutable afterward.
type Event struct {
	id       EventID
	name     string
	reducer  Reducer
	checker  check.Type
	fallback any
}

// NewEvent declares a new event. The reducer defaults to None.
func NewEvent(name string) *Event {
	return &Event{
		id:      EventID(eventIDs.Add(1)),
		name:    name,
		reducer: None,
	}
}

// SetName renames the event.
func (ev *Event) SetName(name string) *Event {
	ev.name = name
	return ev
}

// SetReducer sets the reduction policy applied across listener results.
func (ev *Event) SetReducer(r Reducer) *Event {
	ev.reducer = r
	return ev
}

// SetChecker sets the validator applied to every listener result.
func (ev *Event) SetChecker(t check.Type) *Event {
	ev.checker = t
	return ev
}

// SetDefault sets the value an announce returns when the bin has no
// listeners registered for the event.
func (ev *Event) SetDefault(v any) *Event {
	ev.fallback = v
	return ev
}

// ID returns the event's opaque handle.
func (ev *Event) ID() EventID { return ev.id }

// Name returns the event's debug name.
func (ev *Event) Name() string { return ev.name }

// Default returns the configured no-listener value.
func (ev *Event) Default() any { return ev.fallback }

// DeepCopyOpaque marks events as identity values: deep copy passes them
// through by reference.
func (ev *Event) DeepCopyOpaque() {}
