package graft

import (
	"fmt"
	"math/rand"
	"reflect"
)

// Reducer folds successive listener results into one accumulated value.
// Dispatch calls it once per listener with the running accumulator (nil on
// the first call), the listener's result, the 1-based listener index, and
// the listener's instance. Reducers are pure; any dispatch-scoped state
// must live in the accumulator, so a reducer can serve many events and
// reentrant dispatches at once.
//
// Custom reducers should be order-independent unless order sensitivity is
// the point, as it is for Collect.
type Reducer func(acc, value any, index int, inst *Instance) (any, error)

// None discards every result. Announce returns nil.
func None(acc, value any, index int, inst *Instance) (any, error) {
	return nil, nil
}

// Collect appends each non-nil result to a sequence, preserving listener
// registration order.
func Collect(acc, value any, index int, inst *Instance) (any, error) {
	out, _ := acc.([]any)
	if out == nil {
		out = make([]any, 0, 1)
	}
	if value != nil {
		out = append(out, value)
	}
	return out, nil
}

// Min keeps the smallest numeric result, as the listener returned it.
func Min(acc, value any, index int, inst *Instance) (any, error) {
	v, ok := toFloat(value)
	if !ok {
		return nil, fmt.Errorf("min reducer: non-numeric result %T", value)
	}
	if acc == nil {
		return value, nil
	}
	if a, _ := toFloat(acc); v < a {
		return value, nil
	}
	return acc, nil
}

// Max keeps the largest numeric result, as the listener returned it.
func Max(acc, value any, index int, inst *Instance) (any, error) {
	v, ok := toFloat(value)
	if !ok {
		return nil, fmt.Errorf("max reducer: non-numeric result %T", value)
	}
	if acc == nil {
		return value, nil
	}
	if a, _ := toFloat(acc); v > a {
		return value, nil
	}
	return acc, nil
}

// Sum adds numeric results. The accumulated value is a float64.
func Sum(acc, value any, index int, inst *Instance) (any, error) {
	v, ok := toFloat(value)
	if !ok {
		return nil, fmt.Errorf("sum reducer: non-numeric result %T", value)
	}
	if acc == nil {
		return v, nil
	}
	return acc.(float64) + v, nil
}

// Average keeps a running weighted mean of numeric results as a float64.
func Average(acc, value any, index int, inst *Instance) (any, error) {
	v, ok := toFloat(value)
	if !ok {
		return nil, fmt.Errorf("average reducer: non-numeric result %T", value)
	}
	if acc == nil {
		return v, nil
	}
	a := acc.(float64)
	return (a*float64(index-1) + v) / float64(index), nil
}

// Single returns the lone listener's result and fails with
// ReducerArityError when a second listener reports.
func Single(acc, value any, index int, inst *Instance) (any, error) {
	if index > 1 {
		return nil, &ReducerArityError{Count: index}
	}
	return value, nil
}

// Random keeps each successive result with probability 1/index, yielding
// a uniform choice across all listeners. It draws from the process-wide
// random source, so announce results vary between runs; seed-sensitive
// tests should prefer a custom reducer.
func Random(acc, value any, index int, inst *Instance) (any, error) {
	if rand.Intn(index) == 0 {
		return value, nil
	}
	return acc, nil
}

// toFloat accepts any value of numeric kind, named types included.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}
