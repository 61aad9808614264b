package match

import (
	"errors"

	"github.com/signadot/rwjson/debug"
	"github.com/signadot/rwjson/ir"
)

var errNoMatch = errors.New("no match")

// Match reports whether doc matches pattern.
//
// A null pattern matches anything. An object pattern matches an object
// holding every key of the pattern with a matching value, other keys of
// doc being ignored; with duplicate keys the first one counts. A list
// pattern matches a list of the same length element by element. Any other
// pattern matches an equal scalar.
func Match(doc, pattern ir.Source) (bool, error) {
	if err := doc.Err(); err != nil {
		return false, err
	}
	if err := pattern.Err(); err != nil {
		return false, err
	}
	pt := pattern.Type()
	if debug.Match() {
		debug.Logf("match %s against %s\n", doc.Type(), pt)
	}
	if pt == ir.NullType {
		return true, nil
	}
	if doc.Type() != pt {
		return false, nil
	}
	switch pt {
	case ir.ObjectType:
		return matchObject(doc, pattern)
	case ir.ListType:
		return matchList(doc, pattern)
	}
	return ir.Equal(doc, pattern), nil
}

func matchObject(doc, pattern ir.Source) (bool, error) {
	fields, err := firstByKey(doc)
	if err != nil {
		return false, err
	}
	err = pattern.Range(func(key string, pc ir.Source) error {
		dc, ok := fields[key]
		if !ok {
			return errNoMatch
		}
		return sub(dc, pc)
	})
	return result(err)
}

func matchList(doc, pattern ir.Source) (bool, error) {
	dl, err := doc.Len()
	if err != nil {
		return false, err
	}
	pl, err := pattern.Len()
	if err != nil {
		return false, err
	}
	if dl != pl {
		return false, nil
	}
	elts, err := children(doc)
	if err != nil {
		return false, err
	}
	i := 0
	err = pattern.Range(func(_ string, pc ir.Source) error {
		dc := elts[i]
		i++
		return sub(dc, pc)
	})
	return result(err)
}

func sub(doc, pattern ir.Source) error {
	ok, err := Match(doc, pattern)
	if err != nil {
		return err
	}
	if !ok {
		return errNoMatch
	}
	return nil
}

func result(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errNoMatch):
		return false, nil
	default:
		return false, err
	}
}

func firstByKey(s ir.Source) (map[string]ir.Source, error) {
	res := map[string]ir.Source{}
	err := s.Range(func(key string, c ir.Source) error {
		if _, ok := res[key]; !ok {
			res[key] = c
		}
		return nil
	})
	return res, err
}

func children(s ir.Source) ([]ir.Source, error) {
	var res []ir.Source
	err := s.Range(func(_ string, c ir.Source) error {
		res = append(res, c)
		return nil
	})
	return res, err
}

// Trim returns a copy of doc reduced to the parts named by pattern.
// Object entries whose key the pattern lacks are dropped. For a list
// pattern, each element is paired with the first unused element of doc
// it matches, and the trimmed pairs are kept in pattern order. Anything
// else is copied whole.
func Trim(pattern, doc ir.Source) (*ir.Node, error) {
	if err := pattern.Err(); err != nil {
		return nil, err
	}
	pt := pattern.Type()
	if pt != doc.Type() || (pt != ir.ObjectType && pt != ir.ListType) {
		return ir.FromSource(doc)
	}
	if pt == ir.ObjectType {
		return trimObject(pattern, doc)
	}
	return trimList(pattern, doc)
}

func trimObject(pattern, doc ir.Source) (*ir.Node, error) {
	pFields, err := firstByKey(pattern)
	if err != nil {
		return nil, err
	}
	var kvs []ir.KeyVal
	err = doc.Range(func(key string, dc ir.Source) error {
		pc, ok := pFields[key]
		if !ok {
			return nil
		}
		c, err := Trim(pc, dc)
		if err != nil {
			return err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: c})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ir.FromKeyVals(kvs), nil
}

func trimList(pattern, doc ir.Source) (*ir.Node, error) {
	elts, err := children(doc)
	if err != nil {
		return nil, err
	}
	used := make([]bool, len(elts))
	res := []*ir.Node{}
	err = pattern.Range(func(_ string, pc ir.Source) error {
		for i, dc := range elts {
			if used[i] {
				continue
			}
			ok, err := Match(dc, pc)
			if err != nil || !ok {
				continue
			}
			c, err := Trim(pc, dc)
			if err != nil {
				return err
			}
			res = append(res, c)
			used[i] = true
			break
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ir.FromSlice(res), nil
}
