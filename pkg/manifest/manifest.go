// Package manifest loads event and template declarations from YAML.
//
// A manifest cannot declare behavior: component definitions carry
// functions and must be registered in code before loading. What YAML
// covers well is the declarative rest. Events declare their reduction
// policy, checker, and default value; templates compose registered
// components and previously declared templates:
//
//	events:
//	  - name: damage
//	    reducer: sum
//	    checker: number
//	    default: 0
//
//	templates:
//	  - name: soldier
//	    extends: [unit]
//	    components:
//	      - component: health
//	        params: {max: 150}
//	        data: {regen: 2}
//
// Declarations are registered into the supplied registry as they are
// read, so later entries and later documents of the same stream may
// reference earlier ones by name. Component params arrive at Init as a
// map[string]any; graft.DecodeArgs maps them onto typed config structs.
// Template hooks are functions and therefore stay in code: resolve the
// template after loading and attach them there.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/graft"
	"github.com/aretw0/graft/pkg/check"
	"github.com/aretw0/graft/pkg/registry"
)

// Set is the product of one Load: the declared events and templates, in
// declaration order.
type Set struct {
	Events    []*graft.Event
	Templates []*graft.Template
}

type document struct {
	Events    []eventDecl    `yaml:"events"`
	Templates []templateDecl `yaml:"templates"`
}

type eventDecl struct {
	Name    string `yaml:"name"`
	Reducer string `yaml:"reducer"`
	Checker string `yaml:"checker"`
	Default any    `yaml:"default"`
}

type templateDecl struct {
	Name       string          `yaml:"name"`
	Extends    []string        `yaml:"extends"`
	Components []componentDecl `yaml:"components"`
}

type componentDecl struct {
	Component string         `yaml:"component"`
	Params    map[string]any `yaml:"params"`
	Data      map[string]any `yaml:"data"`
}

var reducers = map[string]graft.Reducer{
	"none":    graft.None,
	"collect": graft.Collect,
	"min":     graft.Min,
	"max":     graft.Max,
	"sum":     graft.Sum,
	"average": graft.Average,
	"single":  graft.Single,
	"random":  graft.Random,
}

// Load reads a YAML manifest stream and registers its declarations in
// reg. Unknown YAML fields are rejected.
func Load(r io.Reader, reg *registry.Registry) (*Set, error) {
	set := &Set{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	for {
		var doc document
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
		if err := apply(doc, reg, set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// LoadFile reads a manifest from disk.
func LoadFile(path string, reg *registry.Registry) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	set, err := Load(f, reg)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", filepath.Base(path), err)
	}
	return set, nil
}

func apply(doc document, reg *registry.Registry, set *Set) error {
	for _, decl := range doc.Events {
		ev, err := buildEvent(decl)
		if err != nil {
			return err
		}
		if err := reg.AddEvent(decl.Name, ev); err != nil {
			return err
		}
		set.Events = append(set.Events, ev)
	}
	for _, decl := range doc.Templates {
		t, err := buildTemplate(decl, reg)
		if err != nil {
			return err
		}
		if err := reg.AddTemplate(decl.Name, t); err != nil {
			return err
		}
		set.Templates = append(set.Templates, t)
	}
	return nil
}

func buildEvent(decl eventDecl) (*graft.Event, error) {
	if decl.Name == "" {
		return nil, fmt.Errorf("event declaration missing name")
	}
	ev := graft.NewEvent(decl.Name)
	if decl.Reducer != "" {
		r, ok := reducers[decl.Reducer]
		if !ok {
			return nil, fmt.Errorf("event %q: unknown reducer %q", decl.Name, decl.Reducer)
		}
		ev.SetReducer(r)
	}
	if decl.Checker != "" {
		typ, err := check.ParseType(decl.Checker)
		if err != nil {
			return nil, fmt.Errorf("event %q: %w", decl.Name, err)
		}
		ev.SetChecker(typ)
	}
	if decl.Default != nil {
		ev.SetDefault(decl.Default)
	}
	return ev, nil
}

func buildTemplate(decl templateDecl, reg *registry.Registry) (*graft.Template, error) {
	if decl.Name == "" {
		return nil, fmt.Errorf("template declaration missing name")
	}
	mixins := make([]graft.Source, 0, len(decl.Extends))
	for _, name := range decl.Extends {
		base, ok := reg.Template(name)
		if !ok {
			return nil, fmt.Errorf("template %q: unknown base template %q", decl.Name, name)
		}
		mixins = append(mixins, base)
	}
	t := graft.NewTemplate(mixins...)
	for _, c := range decl.Components {
		def, ok := reg.Component(c.Component)
		if !ok {
			return nil, fmt.Errorf("template %q: unknown component %q", decl.Name, c.Component)
		}
		var args any
		if len(c.Params) > 0 {
			args = c.Params
		}
		t.AddComponent(def, args)
		if len(c.Data) > 0 {
			if err := t.AddComponentData(def, c.Data); err != nil {
				return nil, fmt.Errorf("template %q: %w", decl.Name, err)
			}
		}
	}
	return t, nil
}
