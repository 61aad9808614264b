package rvalue

import (
	"bytes"
	"slices"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/ir"
)

// Owned is a Value backed by a private copy of its text. It stays valid
// however the buffer it was parsed from is later used.
//
// Values reached from an Owned share its copy and are equally safe to keep.
type Owned struct {
	Value
}

// Own returns an owned copy of the document holding v, positioned at v.
// The parse is not repeated. An error-marked v stays error-marked.
func (v Value) Own() Owned {
	if v.failure() != nil || v.doc.owned {
		return Owned{v}
	}
	doc := &document{
		buf:   bytes.Clone(v.doc.buf),
		tape:  v.doc.tape,
		owned: true,
	}
	v.doc = doc
	return Owned{v}
}

// Own returns o.
func (o Owned) Own() Owned {
	return o
}

func owning(o *loadOpts) {
	o.owned = true
}

// LoadString parses s. Malformed input is reported as for Load.
func LoadString(s string, opts ...LoadOption) Owned {
	return Owned{Load([]byte(s), append(slices.Clip(opts), owning)...)}
}

// FromSource returns an owned parsed value equal to src, for example to
// read back a built *ir.Node through the read-side API.
func FromSource(src ir.Source, opts ...LoadOption) (Owned, error) {
	if err := src.Err(); err != nil {
		return Owned{}, err
	}
	d, err := encode.Append(nil, src)
	if err != nil {
		return Owned{}, err
	}
	v, err := Parse(d, append(slices.Clip(opts), owning)...)
	if err != nil {
		return Owned{}, err
	}
	return Owned{v}, nil
}
