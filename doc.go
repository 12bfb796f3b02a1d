// Package hyperslab translates array-slicing style region descriptions into
// the canonical selection primitives a multidimensional array store consumes,
// and back.
//
// # Cooked and raw forms
//
// A Selection is what callers build: All, an explicit Points list, or a
// Hyperslab of per-axis SliceOrIndex selectors. None of these carry a shape.
// Resolving a Selection against the current shape of an array produces a
// RawSelection (None, All, Points, RegularHyperslab or ComplexHyperslab),
// which is what a storage engine applies to a region handle.
//
//	sel := hyperslab.Select(hyperslab.Unlimited(1, 2, 1), hyperslab.Index(3))
//	raw, err := sel.IntoRaw([]int{10, 20})  // hyperslab[{1 2 5 1} {3 1 1 1}]
//	out, err := sel.OutShape([]int{10, 20}) // [5]
//
// Resolution is all-or-nothing and normalizes degenerate results: a hyperslab
// with an empty axis becomes RawNone, one spanning every element becomes
// RawAll. SelectionFromRaw goes the other way; RawNone comes back as the 0x0
// point list and complex hyperslabs are refused.
//
// # Errors
//
// Bound violations are reported as *ValidationError carrying the axis, the
// offending value and the limit it broke. Raw selections without a cooked
// equivalent are reported as *UnsupportedSelectionError. Both unwrap to
// ErrValidation and ErrUnsupportedSelection respectively.
//
// Every value in this package is immutable and every function is pure, so
// they are safe to use from any number of goroutines.
package hyperslab
