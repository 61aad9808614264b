// Package encode renders values as JSON or YAML text.
//
// # Usage
//
//	res := ir.Null()
//	res.Key("name").SetString("alice")
//	res.Key("age").SetInt(30)
//	s, err := encode.Dump(res) // {"name":"alice","age":30}
//
//	// Pretty print with colors
//	err = encode.Encode(v, os.Stdout, encode.EncodeIndent(2), encode.EncodeColors(encode.NewColors()))
//
//	// YAML
//	err = encode.Encode(v, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
// Any [ir.Source] can be encoded: write-side nodes and parsed values
// alike. JSON output keeps object entries in order, including duplicate
// keys, and writes floating point numbers with a fraction or exponent so
// that parsing the output yields the same number kinds.
//
// # Related Packages
//
//   - github.com/signadot/rwjson/ir - type model and write-side nodes
//   - github.com/signadot/rwjson/rvalue - parses text into values
package encode
