package graft

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Instance is the per-bin state of an attached component. Field access is
// two-tier: instance-local storage first, then the definition's read-only
// defaults.
type Instance struct {
	bin       *Bin
	def       *Component
	fields    map[string]any
	detaching bool // guards against reentrant removal during Destruct
}

// Bin returns the owning bin.
func (in *Instance) Bin() *Bin { return in.bin }

// Definition returns the component definition this instance delegates to.
func (in *Instance) Definition() *Component { return in.def }

// Get returns the effective value of key: the instance-local value if one
// was set, otherwise the definition default, otherwise nil.
func (in *Instance) Get(key string) any {
	v, _ := in.Lookup(key)
	return v
}

// Lookup is Get with an existence report.
func (in *Instance) Lookup(key string) (any, bool) {
	if v, ok := in.fields[key]; ok {
		return v, true
	}
	return in.def.Default(key)
}

// Set writes key into the instance-local tier. Definition defaults are
// never touched.
func (in *Instance) Set(key string, value any) {
	if in.fields == nil {
		in.fields = make(map[string]any)
	}
	in.fields[key] = value
}

// Delete removes the instance-local value of key, re-exposing the
// definition default if one exists.
func (in *Instance) Delete(key string) {
	delete(in.fields, key)
}

// Fields returns the effective field map: defaults overlaid with
// instance-local values. The result is a fresh shallow copy.
func (in *Instance) Fields() map[string]any {
	out := make(map[string]any, len(in.def.defaults)+len(in.fields))
	for k, v := range in.def.defaults {
		out[k] = v
	}
	for k, v := range in.fields {
		out[k] = v
	}
	return out
}

// Decode maps the effective fields onto out, a pointer to a host struct.
func (in *Instance) Decode(out any) error {
	if err := mapstructure.Decode(in.Fields(), out); err != nil {
		return fmt.Errorf("decode component %q: %w", in.def.name, err)
	}
	return nil
}

// DecodeArgs maps a loosely-typed configuration value (typically the
// map[string]any a manifest carries) onto a typed config struct. Init
// functions use it to accept both typed and manifest-supplied configs.
func DecodeArgs(cfg any, out any) error {
	if cfg == nil {
		return nil
	}
	if err := mapstructure.Decode(cfg, out); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
