package libdiff

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/signadot/rwjson/ir"
)

var ErrBadDiff = errors.New("bad diff")

// Apply returns the result of applying d to from, which is not modified.
// Apply(from, Diff(from, to)) equals to, except that an object diff
// addresses only the first of duplicate keys.
func Apply(from ir.Source, d *ir.Node) (*ir.Node, error) {
	f, err := ir.FromSource(from)
	if err != nil {
		return nil, err
	}
	res, keep, err := apply(f, d)
	if err != nil {
		return nil, err
	}
	if !keep {
		return nil, fmt.Errorf("%w: top level %s", ErrBadDiff, DeleteKey)
	}
	return res, nil
}

// apply reports keep == false when d deletes the value.
func apply(from *ir.Node, d *ir.Node) (*ir.Node, bool, error) {
	if d == nil {
		return from, true, nil
	}
	if d.Type() != ir.ObjectType {
		return nil, false, fmt.Errorf("%w: diff is %s", ErrBadDiff, d.Type())
	}
	key, v, ok := marker(d)
	if !ok {
		res, err := applyObject(from, d)
		return res, true, err
	}
	switch key {
	case DeleteKey:
		return nil, false, nil
	case InsertKey:
		return v.Clone(), true, nil
	case ReplaceKey:
		to := v.Get(ToKey)
		if to == nil {
			return nil, false, fmt.Errorf("%w: %s without %s", ErrBadDiff, ReplaceKey, ToKey)
		}
		return to.Clone(), true, nil
	default:
		res, err := applyList(from, v)
		return res, true, err
	}
}

func applyObject(from, d *ir.Node) (*ir.Node, error) {
	if from.Type() != ir.ObjectType {
		return nil, fmt.Errorf("%w: object diff on %s", ErrBadDiff, from.Type())
	}
	keys := from.Keys()
	vals := make([]*ir.Node, len(keys))
	for i := range keys {
		vals[i] = from.At(i)
	}
	dKeys := d.Keys()
	for i, dk := range dKeys {
		k, err := unescapeKey(dk)
		if err != nil {
			return nil, err
		}
		c := d.At(i)
		j := slices.Index(keys, k)
		if j < 0 {
			if mk, v, ok := marker(c); ok && mk == InsertKey {
				keys = append(keys, k)
				vals = append(vals, v.Clone())
				continue
			}
			return nil, fmt.Errorf("%w: key %q not found", ErrBadDiff, k)
		}
		res, keep, err := apply(vals[j], c)
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", k, err)
		}
		if !keep {
			keys = slices.Delete(keys, j, j+1)
			vals = slices.Delete(vals, j, j+1)
			continue
		}
		vals[j] = res
	}
	kvs := make([]ir.KeyVal, len(keys))
	for i := range keys {
		kvs[i] = ir.KeyVal{Key: keys[i], Val: vals[i]}
	}
	return ir.FromKeyVals(kvs), nil
}

func applyList(from, d *ir.Node) (*ir.Node, error) {
	if from.Type() != ir.ListType {
		return nil, fmt.Errorf("%w: list diff on %s", ErrBadDiff, from.Type())
	}
	entries := map[int]*ir.Node{}
	last := -1
	for i, k := range d.Keys() {
		ri, err := strconv.Atoi(k)
		if err != nil || ri < 0 {
			return nil, fmt.Errorf("%w: list position %q", ErrBadDiff, k)
		}
		entries[ri] = d.At(i)
		last = max(last, ri)
	}
	n, _ := from.Len()
	res := ir.FromSlice(nil)
	for ri, fi := 0, 0; fi < n || ri <= last; ri++ {
		c, ok := entries[ri]
		if mk, v, isMarker := marker(orEmpty(c)); ok && isMarker && mk == InsertKey {
			res.Append(v.Clone())
			continue
		}
		if fi >= n {
			return nil, fmt.Errorf("%w: list position %d past end", ErrBadDiff, ri)
		}
		elt, keep, err := apply(from.At(fi), c)
		if err != nil {
			return nil, fmt.Errorf("at [%d]: %w", ri, err)
		}
		if keep {
			res.Append(elt)
		}
		fi++
	}
	return res, nil
}

func orEmpty(n *ir.Node) *ir.Node {
	if n == nil {
		return ir.Null()
	}
	return n
}
