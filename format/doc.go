// Package format names the output formats values can be rendered in.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	err = encode.Encode(v, os.Stdout, encode.EncodeFormat(f))
//
// [Format] implements encoding.TextMarshaler and TextUnmarshaler so it can
// be used directly as a command line option.
//
// # Related Packages
//
//   - github.com/signadot/rwjson/encode - renders values in a format
package format
