// Package check provides the type-checker library for event results.
//
// It defines a simple type system with built-in validators (string, int,
// float, number, bool, map) and support for slices and custom predicates.
// An event declared with a checker rejects listener return values that do
// not conform.
//
// Basic usage:
//
//	damage := graft.NewEvent("damage").
//	    SetReducer(graft.Sum).
//	    SetChecker(check.Number())
//
// Checkers can also be parsed from type strings, which is how manifests
// reference them:
//
//	typ, err := check.ParseType("[number]")
//
// Custom validators cover domain-specific contracts:
//
//	percent := check.Custom("percent", func(v any) error {
//	    f, ok := v.(float64)
//	    if !ok {
//	        return fmt.Errorf("expected float64")
//	    }
//	    if f < 0 || f > 1 {
//	        return fmt.Errorf("out of range")
//	    }
//	    return nil
//	})
//
// This package has zero dependencies beyond the Go standard library and can
// be used independently of the runtime.
package check
