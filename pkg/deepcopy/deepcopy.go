package deepcopy

import (
	"fmt"
	"reflect"
)

// Cloner lets a value supply its own copy. Copy calls Clone instead of
// descending into the value. Clone must return a value assignable to the
// original's type.
type Cloner interface {
	Clone() any
}

// Opaque marks identity-bearing values (component definitions, event
// identities, host sentinels). Copy returns them by reference, unchanged,
// every occurrence.
type Opaque interface {
	DeepCopyOpaque()
}

// UncopyableError reports a value outside the plain-data domain: a struct
// or other sealed value that is neither Opaque nor a Cloner.
type UncopyableError struct {
	Type string // Go type of the offending value
}

func (e *UncopyableError) Error() string {
	return fmt.Sprintf("cannot copy sealed value of type %s", e.Type)
}

var (
	clonerType = reflect.TypeOf((*Cloner)(nil)).Elem()
	opaqueType = reflect.TypeOf((*Opaque)(nil)).Elem()
)

// refKey identifies a composite by the original's identity, so aliased
// occurrences resolve to one copy.
type refKey struct {
	kind reflect.Kind
	ptr  uintptr
	len  int
	cap  int
}

type copier struct {
	memo map[refKey]reflect.Value
}

// Copy returns a structural clone of v. See the package documentation for
// the exact walk rules.
func Copy(v any) (any, error) {
	c := copier{memo: make(map[refKey]reflect.Value)}
	out, err := c.copy(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	if !out.IsValid() {
		return nil, nil
	}
	return out.Interface(), nil
}

// MustCopy is Copy for values known to be plain data. It panics on error.
func MustCopy(v any) any {
	out, err := Copy(v)
	if err != nil {
		panic(err)
	}
	return out
}

func (c *copier) copy(rv reflect.Value) (reflect.Value, error) {
	if !rv.IsValid() {
		return rv, nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv, nil
		}
		return c.copy(rv.Elem())
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return rv, nil
		}
	}

	t := rv.Type()
	if t.Implements(opaqueType) {
		return rv, nil
	}
	if t.Implements(clonerType) {
		out := rv.Interface().(Cloner).Clone()
		if out == nil {
			return reflect.Zero(t), nil
		}
		return reflect.ValueOf(out), nil
	}

	switch rv.Kind() {
	case reflect.Map:
		return c.copyMap(rv)
	case reflect.Slice:
		return c.copySlice(rv)
	case reflect.Pointer:
		return c.copyPointer(rv)
	case reflect.Array:
		return c.copyArray(rv)
	case reflect.Struct, reflect.UnsafePointer:
		return reflect.Value{}, &UncopyableError{Type: t.String()}
	default:
		// Scalars and strings are immutable; functions and channels keep
		// their reference semantics.
		return rv, nil
	}
}

func (c *copier) copyMap(rv reflect.Value) (reflect.Value, error) {
	key := refKey{kind: reflect.Map, ptr: rv.Pointer()}
	if dst, ok := c.memo[key]; ok {
		return dst, nil
	}
	dst := reflect.MakeMapWithSize(rv.Type(), rv.Len())
	// Memoize before walking entries so a map reaching itself resolves to
	// the copy under construction.
	c.memo[key] = dst
	iter := rv.MapRange()
	for iter.Next() {
		k, err := c.copy(iter.Key())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("map key %v: %w", iter.Key(), err)
		}
		v, err := c.copy(iter.Value())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %v: %w", iter.Key(), err)
		}
		dst.SetMapIndex(k, v)
	}
	return dst, nil
}

func (c *copier) copySlice(rv reflect.Value) (reflect.Value, error) {
	key := refKey{kind: reflect.Slice, ptr: rv.Pointer(), len: rv.Len(), cap: rv.Cap()}
	if dst, ok := c.memo[key]; ok {
		return dst, nil
	}
	dst := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	c.memo[key] = dst
	for i := 0; i < rv.Len(); i++ {
		v, err := c.copy(rv.Index(i))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		dst.Index(i).Set(v)
	}
	return dst, nil
}

func (c *copier) copyPointer(rv reflect.Value) (reflect.Value, error) {
	key := refKey{kind: reflect.Pointer, ptr: rv.Pointer()}
	if dst, ok := c.memo[key]; ok {
		return dst, nil
	}
	dst := reflect.New(rv.Type().Elem()).Convert(rv.Type())
	c.memo[key] = dst
	v, err := c.copy(rv.Elem())
	if err != nil {
		return reflect.Value{}, err
	}
	dst.Elem().Set(v)
	return dst, nil
}

func (c *copier) copyArray(rv reflect.Value) (reflect.Value, error) {
	dst := reflect.New(rv.Type()).Elem()
	for i := 0; i < rv.Len(); i++ {
		v, err := c.copy(rv.Index(i))
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}
		dst.Index(i).Set(v)
	}
	return dst, nil
}
