package graft

import "fmt"

// DuplicateComponentError reports an attach of a definition the bin
// already carries.
type DuplicateComponentError struct {
	Component string // definition name
}

func (e *DuplicateComponentError) Error() string {
	return fmt.Sprintf("component %q already attached", e.Component)
}

// ComponentNotFoundError reports an ExpectComponent miss.
type ComponentNotFoundError struct {
	Component string
}

func (e *ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component %q not attached", e.Component)
}

// DuplicateListenerError reports a second listener registration of the
// same definition for the same event.
type DuplicateListenerError struct {
	Event     string
	Component string
}

func (e *DuplicateListenerError) Error() string {
	return fmt.Sprintf("component %q already listens to %q", e.Component, e.Event)
}

// DetachedListenerError reports a registered listener whose definition has
// no live instance in the bin at dispatch time.
type DetachedListenerError struct {
	Event     string
	Component string
	Index     int // 1-based listener position in the dispatch
}

func (e *DetachedListenerError) Error() string {
	return fmt.Sprintf("event %q: listener %d (%s) has no live instance", e.Event, e.Index, e.Component)
}

// MissingListenerImplementationError reports a registration for an event
// the definition does not implement.
type MissingListenerImplementationError struct {
	Event     string
	Component string
	Index     int // 1-based listener position in the dispatch
}

func (e *MissingListenerImplementationError) Error() string {
	return fmt.Sprintf("event %q: listener %d (%s) has no implementation for it", e.Event, e.Index, e.Component)
}

// TypeCheckViolationError reports a listener result rejected by the
// event's checker.
type TypeCheckViolationError struct {
	Event     string
	Component string
	Index     int // 1-based listener position in the dispatch
	Value     any
	Cause     error
}

func (e *TypeCheckViolationError) Error() string {
	return fmt.Sprintf("event %q: listener %d (%s) returned invalid value: %v",
		e.Event, e.Index, e.Component, e.Cause)
}

func (e *TypeCheckViolationError) Unwrap() error { return e.Cause }

// ReducerArityError reports more listener results than the reducer
// accepts.
type ReducerArityError struct {
	Count int // invocation count at the point of failure
}

func (e *ReducerArityError) Error() string {
	return fmt.Sprintf("reducer accepts a single result, got %d", e.Count)
}

// ComponentNotInTemplateError reports a parameter or data update for a
// definition the template has no entry for.
type ComponentNotInTemplateError struct {
	Component string
}

func (e *ComponentNotInTemplateError) Error() string {
	return fmt.Sprintf("component %q is not part of the template", e.Component)
}

// SelfReferentialDataError reports a template overlay containing the
// overlay map itself.
type SelfReferentialDataError struct {
	Component string
	Key       string // overlay key holding the self-reference
}

func (e *SelfReferentialDataError) Error() string {
	return fmt.Sprintf("overlay for component %q: key %q refers to the overlay itself", e.Component, e.Key)
}
