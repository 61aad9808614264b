package libdiff

import (
	"fmt"
	"strings"

	"github.com/signadot/rwjson/ir"
)

// MakeDiff returns the diff replacing from by to. A nil from is an
// insertion and a nil to a deletion. The arguments are cloned.
func MakeDiff(from, to *ir.Node) *ir.Node {
	res := ir.Null()
	switch {
	case from == nil:
		res.Add(InsertKey, to.Clone())
	case to == nil:
		res.Add(DeleteKey, from.Clone())
	default:
		res.Key(ReplaceKey).
			Add(FromKey, from.Clone()).
			Add(ToKey, to.Clone())
	}
	return res
}

// marker returns the marker key and value of a single change diff.
func marker(d *ir.Node) (string, *ir.Node, bool) {
	keys := d.Keys()
	if len(keys) != 1 {
		return "", nil, false
	}
	switch keys[0] {
	case DeleteKey, InsertKey, ReplaceKey, ListDiffKey:
		return keys[0], d.At(0), true
	}
	return "", nil, false
}

func escapeKey(k string) string {
	if strings.HasPrefix(k, "!") {
		return "!" + k
	}
	return k
}

func unescapeKey(k string) (string, error) {
	if !strings.HasPrefix(k, "!") {
		return k, nil
	}
	if !strings.HasPrefix(k, "!!") {
		return "", fmt.Errorf("%w: unexpected marker %q in object diff", ErrBadDiff, k)
	}
	return k[1:], nil
}
