/*
Package graft is an in-process runtime for component-based object composition, designed for hosts (games, simulations, editors) that want composition over inheritance and decoupled component-to-component signaling.

It assembles entities ("bins") out of independently-defined behavior packages ("components"), with cross-component communication mediated by typed, reducer-aggregated events and reproducible assembly provided by declarative templates.

# Concept

A Component definition is immutable and shared; attaching it to a Bin creates an Instance with two-tier field storage (local overrides falling back to definition defaults). Instances never call each other directly: they announce Events on their bin, and the bin fans the announcement out to the registered listeners in order, folding their return values through the event's reducer. Templates stamp out fully-populated bins from component entries, constructor arguments, and data overlays, composing larger blueprints out of smaller ones via mixins.

# Key Features

  - Explicit composition: bins hold at most one instance per definition, keyed by opaque handles.
  - Typed events: per-event reducers (Sum, Collect, Single, ...) and optional result checkers from pkg/check.
  - Reproducible assembly: template overlays are deep-copied per instancing, so stamped bins never share mutable state.
  - Ambient observability: structured logging via log/slog and lifecycle hooks that bridge cleanly to Prometheus (pkg/observability).

# Usage

Define components and events at startup, then build bins by hand or from templates:

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/graft"
	)

	func main() {
		scored := graft.NewEvent("scored").SetReducer(graft.Sum).SetDefault(0)

		counter := graft.MustDefine(graft.Spec{
			Name:     "counter",
			Defaults: map[string]any{"points": 1},
			Init: func(inst *graft.Instance, cfg any) error {
				return inst.Bin().AddListener(scored, inst.Definition())
			},
			Listeners: map[*graft.Event]graft.Listener{
				scored: func(inst *graft.Instance, args ...any) (any, error) {
					return inst.Get("points"), nil
				},
			},
		})

		bin := graft.NewBin()
		if _, err := bin.AddComponent(counter, nil); err != nil {
			log.Fatal(err)
		}

		total, err := bin.Announce(scored)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("total:", total)
	}

The runtime is single-threaded and synchronous: announcing is a plain call chain, reentrancy included. Nothing here is safe for concurrent use.
*/
package graft
