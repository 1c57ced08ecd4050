// Package property defines the raw style value model used by the styling
// engine: typed, unit-tagged property values, per-property registry metadata
// (default value, inheritance, allowed units), and parsing of declaration
// text into values.
//
// A [Property] is immutable once constructed and is copied by value. The
// [Registry] assigns every registered property a dense [ID] so that hot
// resolution paths can dispatch through tables instead of string comparison;
// open-ended custom properties fall back to string keys.
//
// The registry is an explicit handle rather than process-global state: the
// engine threads a *Registry through definition construction and value
// resolution, which keeps isolated tests cheap.
package property
