// Package match tests documents against structural patterns and trims
// documents down to what a pattern names.
//
// Patterns are ordinary documents: {"kind": "service", "spec": null}
// matches any object whose kind is "service" and which has a spec.
package match
