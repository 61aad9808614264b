// Package libdiff computes structural diffs between JSON values.
//
// # Usage
//
//	d, err := libdiff.Diff(oldValue, newValue) // nil when equal
//	patched, err := libdiff.Apply(oldValue, d)
//	undo, err := libdiff.Reverse(d)
//
// Diffs are themselves JSON objects, so they can be encoded, stored and
// parsed back like any other value. See the marker keys in this package
// for their shape.
//
// # Related Packages
//
//   - github.com/signadot/rwjson/ir - write-side nodes
package libdiff
