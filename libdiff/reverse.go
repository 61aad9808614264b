package libdiff

import (
	"fmt"

	"github.com/signadot/rwjson/ir"
)

// Reverse returns the diff undoing d.
func Reverse(d *ir.Node) (*ir.Node, error) {
	if d == nil {
		return nil, nil
	}
	if d.Type() != ir.ObjectType {
		return nil, fmt.Errorf("%w: diff is %s", ErrBadDiff, d.Type())
	}
	if key, v, ok := marker(d); ok {
		res := ir.Null()
		switch key {
		case DeleteKey:
			res.Add(InsertKey, v.Clone())
		case InsertKey:
			res.Add(DeleteKey, v.Clone())
		case ReplaceKey:
			from, to := v.Get(FromKey), v.Get(ToKey)
			if from == nil || to == nil {
				return nil, fmt.Errorf("%w: %s needs %s and %s", ErrBadDiff, ReplaceKey, FromKey, ToKey)
			}
			res.Key(ReplaceKey).Add(FromKey, to.Clone()).Add(ToKey, from.Clone())
		case ListDiffKey:
			rv, err := reverseEntries(v)
			if err != nil {
				return nil, err
			}
			res.Add(ListDiffKey, rv)
		}
		return res, nil
	}
	return reverseEntries(d)
}

func reverseEntries(d *ir.Node) (*ir.Node, error) {
	keys := d.Keys()
	res := ir.FromKeyVals(nil)
	for i, k := range keys {
		c, err := Reverse(d.At(i))
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", k, err)
		}
		res.Add(k, c)
	}
	return res, nil
}
