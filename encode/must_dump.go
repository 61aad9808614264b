package encode

import "github.com/signadot/rwjson/ir"

// MustDump is like Dump but panics on failure.
func MustDump(v ir.Source, opts ...EncodeOption) string {
	res, err := Dump(v, opts...)
	if err != nil {
		panic(err)
	}
	return res
}
