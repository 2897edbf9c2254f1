package graft

import (
	"fmt"
	"reflect"

	"github.com/aretw0/graft/pkg/deepcopy"
)

// Hook is a template construction callback, invoked with the bin under
// construction and the args passed to Instance.
type Hook func(bin *Bin, args any) error

// Source is a mixin input to NewTemplate: an existing *Template, whose
// component entries are copied, or a bare *Component, added with no
// constructor arguments.
type Source interface {
	templateEntries() []entry
}

type entry struct {
	def     *Component
	args    any
	overlay map[string]any
}

// Template is a reusable blueprint for stamping out fully-populated bins:
// an ordered sequence of component entries, each with constructor
// arguments and an optional data overlay, plus optional pre/post
// construction hooks. Hooks are each template's own and never travel
// through mixin composition.
type Template struct {
	entries []entry
	index   map[ComponentID]int
	preInit Hook
	init    Hook
}

// NewTemplate builds a template from mixins, applied in order. A template
// mixin contributes its component entries (constructor args shared,
// overlay maps copied); a component mixin contributes a bare entry. When
// mixins collide on a definition, the later one's args win and overlay
// keys merge.
func NewTemplate(mixins ...Source) *Template {
	t := &Template{index: make(map[ComponentID]int)}
	for _, m := range mixins {
		if m == nil {
			continue
		}
		for _, e := range m.templateEntries() {
			t.put(e.def, e.args)
			if len(e.overlay) > 0 {
				t.mergeOverlay(e.def, e.overlay)
			}
		}
	}
	return t
}

func (t *Template) templateEntries() []entry {
	out := make([]entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = entry{def: e.def, args: e.args}
		if len(e.overlay) > 0 {
			ov := make(map[string]any, len(e.overlay))
			for k, v := range e.overlay {
				ov[k] = v
			}
			out[i].overlay = ov
		}
	}
	return out
}

func (c *Component) templateEntries() []entry {
	return []entry{{def: c}}
}

// AddComponent inserts or overwrites the entry for def. Overwriting
// replaces the constructor args but preserves a previously attached data
// overlay.
func (t *Template) AddComponent(def *Component, args any) *Template {
	if def != nil {
		t.put(def, args)
	}
	return t
}

// AddComponentParams replaces the constructor args of an existing entry.
// It fails with ComponentNotInTemplateError when def has no entry,
// distinguishing updates from inserts.
func (t *Template) AddComponentParams(def *Component, args any) error {
	if def == nil {
		return fmt.Errorf("template params: nil definition")
	}
	i, ok := t.index[def.id]
	if !ok {
		return &ComponentNotInTemplateError{Component: def.name}
	}
	t.entries[i].args = args
	return nil
}

// AddComponentData merges overlay keys into def's existing entry. Overlay
// values are deep-copied at instancing time, not now, so mutating the
// overlay later shows up in future instances. A value aliasing the
// overlay map itself fails with SelfReferentialDataError; deeper cycles
// are legal and survive the instancing copy.
func (t *Template) AddComponentData(def *Component, overlay map[string]any) error {
	if def == nil {
		return fmt.Errorf("template data: nil definition")
	}
	if _, ok := t.index[def.id]; !ok {
		return &ComponentNotInTemplateError{Component: def.name}
	}
	if len(overlay) == 0 {
		return nil
	}
	self := reflect.ValueOf(overlay).Pointer()
	for k, v := range overlay {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Map && rv.Pointer() == self {
			return &SelfReferentialDataError{Component: def.name, Key: k}
		}
	}
	t.mergeOverlay(def, overlay)
	return nil
}

// SetPreInit registers the hook run on the still-empty bin before entries
// apply.
func (t *Template) SetPreInit(fn Hook) *Template {
	t.preInit = fn
	return t
}

// SetInit registers the hook run after all entries have applied.
func (t *Template) SetInit(fn Hook) *Template {
	t.init = fn
	return t
}

// Components returns the entry definitions in insertion order.
func (t *Template) Components() []*Component {
	out := make([]*Component, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.def
	}
	return out
}

// Instance stamps out a new bin: an empty bin is created with opts, the
// pre-init hook runs, entries apply in insertion order, and the init hook
// finishes. An entry whose definition the bin already has (a pre-init may
// have added it) is skipped entirely; otherwise the component attaches
// with the entry's constructor args and a deep copy of the entry's
// overlay is assigned key-by-key onto the fresh instance. Every Instance
// call copies the overlays anew, so bins never share overlay-derived
// data.
func (t *Template) Instance(args any, opts ...Option) (*Bin, error) {
	bin := NewBin(opts...)
	if t.preInit != nil {
		if err := t.preInit(bin, args); err != nil {
			return nil, fmt.Errorf("template pre-init: %w", err)
		}
	}
	for _, e := range t.entries {
		if bin.HasComponent(e.def) {
			continue
		}
		inst, err := bin.AddComponent(e.def, e.args)
		if err != nil {
			return nil, err
		}
		if len(e.overlay) == 0 {
			continue
		}
		data, err := deepcopy.Copy(e.overlay)
		if err != nil {
			return nil, fmt.Errorf("overlay for component %q: %w", e.def.name, err)
		}
		for k, v := range data.(map[string]any) {
			inst.Set(k, v)
		}
	}
	if t.init != nil {
		if err := t.init(bin, args); err != nil {
			return nil, fmt.Errorf("template init: %w", err)
		}
	}
	return bin, nil
}

func (t *Template) put(def *Component, args any) {
	if i, ok := t.index[def.id]; ok {
		t.entries[i].args = args
		return
	}
	t.index[def.id] = len(t.entries)
	t.entries = append(t.entries, entry{def: def, args: args})
}

func (t *Template) mergeOverlay(def *Component, overlay map[string]any) {
	i := t.index[def.id]
	if t.entries[i].overlay == nil {
		t.entries[i].overlay = make(map[string]any, len(overlay))
	}
	for k, v := range overlay {
		t.entries[i].overlay[k] = v
	}
}
