// Package rvalue parses JSON text into lazily typed read-only values.
//
// # Usage
//
//	v := rvalue.Load(buf)
//	name, err := v.Get("name").Str()
//	for item := range v.Get("items").Values() {
//	    ...
//	}
//
// Parsing validates the whole text and records the structure on a flat
// tape. Strings and numbers are decoded when read, and the child index of
// a list or object is built on first keyed or positional access.
//
// # Ownership
//
// A [Value] from [Load] or [Parse] borrows the input buffer. [Value.Own],
// [LoadString] and [FromSource] return an [Owned] value holding its own
// copy of the text.
//
// # Failures
//
// Every failure is an [*Error] wrapping a sentinel such as [ErrParse] or
// [ErrKeyNotFound]. How it is reported depends on the [Mode]: Tolerant
// returns error-marked values that propagate through further navigation;
// Strict panics, and [Catch] recovers the panic as an error.
//
//	func name(buf []byte) (res string, err error) {
//	    defer rvalue.Catch(&err)
//	    res, _ = rvalue.Load(buf, rvalue.LoadStrict()).Get("name").Str()
//	    return res, nil
//	}
//
// The default mode is Tolerant, or Strict when built with the
// rvalue_strict tag.
//
// # Thread Safety
//
// Reading a document fills its child index cache, so values from one
// document must not be read from several goroutines at once.
//
// # Related Packages
//
//   - github.com/signadot/rwjson/ir - type model and write-side nodes
//   - github.com/signadot/rwjson/encode - renders values as text
package rvalue
