// Package deepcopy provides a structural clone for plain data containers.
//
// Copy walks maps, slices, arrays and pointers, producing fresh containers
// with the same contents. Scalars, strings, functions and channels pass
// through unchanged. Aliasing is preserved: if two paths in the input reach
// the same container, the corresponding paths in the output reach the same
// copied container. Cyclic structures copy without recursing forever.
//
//	src := map[string]any{"tags": []string{"a", "b"}}
//	dst, err := deepcopy.Copy(src)
//
// Two interfaces adjust the walk:
//
//   - Opaque marks identity-bearing values. An Opaque value is returned by
//     reference, unchanged, every time it is encountered.
//   - Cloner delegates copying to the value itself; Copy calls Clone and
//     uses its result.
//
// Everything else outside the plain-data domain, in particular struct
// values that implement neither interface, fails with UncopyableError:
// a typed configuration value decides its own copy semantics via Cloner
// instead of being taken apart by reflection.
package deepcopy
