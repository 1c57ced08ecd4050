// Package style implements cascading style resolution for an element tree.
//
// The engine combines three sources of style data into per-element computed
// values: an immutable, shared [Definition] compiled from the style rules
// that matched an element, the element's own local property overrides, and
// inherited values from ancestors. Dynamic state (classes and pseudo-classes)
// selects between conditional rule branches inside the Definition and drives
// incremental invalidation through per-element dirty sets.
//
// # Main Types
//
// Definition is the compiled cascade result for one matched-rule signature.
// It is immutable after construction and shared by reference count across
// every element with an identical match set, which makes unsynchronized
// sharing safe.
//
// ElementStyle is the per-element style state: local overrides, active
// classes and pseudo-classes, the current Definition reference and the
// pending dirty set. It owns the resolution algorithms, including
// [ElementStyle.ComputeValues], which turns raw property values into typed,
// absolute [ComputedValues] ready for layout.
//
// # Update Model
//
// Invalidation is pull-based. Mutations (class or pseudo-class changes,
// property overrides, definition swaps) only grow dirty sets; nothing is
// recomputed until the update driver walks the tree and calls ComputeValues.
// The driver must visit parents before children in each pass, or inherited
// value copies go stale. Everything here is single-threaded by design.
package style
