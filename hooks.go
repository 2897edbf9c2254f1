package graft

import "time"

// AttachEvent describes a component attaching to or detaching from a bin.
type AttachEvent struct {
	Bin       string
	Component string
}

// ListenerEvent describes one listener invocation during a dispatch.
type ListenerEvent struct {
	Bin       string
	Event     string
	Component string
	Index     int // 1-based position in the dispatch
}

// AnnounceEvent describes one completed dispatch on a bin.
type AnnounceEvent struct {
	Bin       string
	Event     string
	Listeners int // registrations at dispatch start
	Duration  time.Duration
	Err       error
}

// Hooks defines callbacks for bin observability. The zero value disables
// all of them. Hooks run synchronously inside the operation that fires
// them and must not mutate the bin.
type Hooks struct {
	OnAttach   func(*AttachEvent)
	OnDetach   func(*AttachEvent)
	OnListener func(*ListenerEvent)
	OnAnnounce func(*AnnounceEvent)
}

// Join merges hook sets into one that invokes each in order. It lets a
// host stack its own callbacks on top of, say, a metrics bridge.
func Join(sets ...Hooks) Hooks {
	var out Hooks
	for _, h := range sets {
		out.OnAttach = joinAttach(out.OnAttach, h.OnAttach)
		out.OnDetach = joinAttach(out.OnDetach, h.OnDetach)
		out.OnListener = joinListener(out.OnListener, h.OnListener)
		out.OnAnnounce = joinAnnounce(out.OnAnnounce, h.OnAnnounce)
	}
	return out
}

func joinAttach(a, b func(*AttachEvent)) func(*AttachEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *AttachEvent) { a(e); b(e) }
}

func joinListener(a, b func(*ListenerEvent)) func(*ListenerEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *ListenerEvent) { a(e); b(e) }
}

func joinAnnounce(a, b func(*AnnounceEvent)) func(*AnnounceEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e *AnnounceEvent) { a(e); b(e) }
}
