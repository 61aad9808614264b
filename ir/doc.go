// Package ir provides the JSON type model and the write-side value.
//
// # Types
//
// [Type] is the closed set of JSON kinds: null, false, true, number,
// string, list and object. Numbers are refined by [NumType] according to
// the shape of their literal: unsigned integer, signed integer or floating
// point. [TypeString] names a kind for diagnostics.
//
// # Nodes
//
// A [Node] is a mutable JSON tree used to assemble output:
//
//	res := ir.Null()
//	res.Key("name").SetString("ada")
//	res.Key("ports").Index(1).SetInt(8080) // [null, 8080]
//	res.Add("tag", ir.FromString("a")).Add("tag", ir.FromString("b"))
//
// Nodes own their children. [Node.Take] moves the contents of a node to a
// new one and leaves the source null; [Node.Clone] is the explicit deep
// copy. Copying a Node struct is reported by go vet.
//
// Constructors cover strings, booleans, every numeric type through
// [FromNumber], lists, objects and any [Source] through [FromSource], which
// makes a deep copy of a parsed value.
//
// # Sources
//
// [Source] is the read interface implemented both by *Node and by parsed
// values from the rvalue package. Encoding, [Compare] and [FromSource]
// operate on any Source.
//
// # Thread Safety
//
// Nodes are not safe for concurrent mutation. Callers sharing a node
// across goroutines must serialize access themselves.
//
// # Related Packages
//
//   - github.com/signadot/rwjson/rvalue - parses text into lazily typed values
//   - github.com/signadot/rwjson/encode - renders a Source as JSON text
package ir
