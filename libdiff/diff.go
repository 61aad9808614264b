package libdiff

import (
	"strconv"
	"unicode/utf8"

	"github.com/signadot/rwjson/encode"
	"github.com/signadot/rwjson/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a diff taking from to to, or nil when they are equal.
//
// Objects are compared by key: the key sequences are aligned with a
// sequence diff so that removed, added and common keys are found, and
// common keys are compared recursively. Lists are aligned the same way on
// a summary of their elements. Anything else that differs is replaced.
func Diff(from, to ir.Source) (*ir.Node, error) {
	f, err := ir.FromSource(from)
	if err != nil {
		return nil, err
	}
	t, err := ir.FromSource(to)
	if err != nil {
		return nil, err
	}
	return diff(f, t), nil
}

func diff(from, to *ir.Node) *ir.Node {
	if from.Type() != to.Type() {
		return MakeDiff(from, to)
	}
	switch from.Type() {
	case ir.ObjectType:
		return diffObject(from, to)
	case ir.ListType:
		return diffList(from, to)
	}
	if ir.Equal(from, to) {
		return nil
	}
	return MakeDiff(from, to)
}

func diffObject(from, to *ir.Node) *ir.Node {
	m := map[string]rune{}
	fromKeys, toKeys := from.Keys(), to.Keys()
	fromRunes := mapStrings(m, fromKeys)
	toRunes := mapStrings(m, toKeys)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	res := ir.FromKeyVals(nil)
	fi, ti := 0, 0
	for i := range diffs {
		d := &diffs[i]
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			for range n {
				res.Add(escapeKey(fromKeys[fi]), MakeDiff(from.At(fi), nil))
				fi++
			}
		case diffpatch.DiffEqual:
			for range n {
				if c := diff(from.At(fi), to.At(ti)); c != nil {
					res.Add(escapeKey(fromKeys[fi]), c)
				}
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				res.Add(escapeKey(toKeys[ti]), MakeDiff(nil, to.At(ti)))
				ti++
			}
		}
	}
	if len(res.Keys()) == 0 {
		return nil
	}
	return res
}

// diffList aligns elements on a summary holding the kind of containers and
// the text of scalars. Aligned containers are compared recursively, and a
// deletion directly followed by an insertion at the same position becomes
// a replacement. Positions in the result are those of from, except for
// insertions past its end.
func diffList(from, to *ir.Node) *ir.Node {
	m := map[string]rune{}
	fromRunes := mapStrings(m, summaries(from))
	toRunes := mapStrings(m, summaries(to))
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)
	res := ir.FromKeyVals(nil)
	fi, ti, ri := 0, 0, 0
	lastDelete := -1
	for i := range diffs {
		d := &diffs[i]
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			for range n {
				res.Add(strconv.Itoa(ri), MakeDiff(from.At(fi), nil))
				lastDelete = ri
				ri++
				fi++
			}
		case diffpatch.DiffEqual:
			lastDelete = -1
			for range n {
				if c := diff(from.At(fi), to.At(ti)); c != nil {
					res.Add(strconv.Itoa(ri), c)
				}
				ri++
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range n {
				if lastDelete >= 0 && lastDelete == ri-1 {
					prev := res.Get(strconv.Itoa(lastDelete))
					del := prev.Get(DeleteKey)
					prev.Clear()
					prev.Key(ReplaceKey).
						Add(FromKey, del).
						Add(ToKey, to.At(ti).Clone())
				} else {
					res.Add(strconv.Itoa(ri), MakeDiff(nil, to.At(ti)))
					ri++
				}
				lastDelete = -1
				ti++
			}
		}
	}
	if len(res.Keys()) == 0 {
		return nil
	}
	out := ir.Null()
	out.Add(ListDiffKey, res)
	return out
}

func summaries(n *ir.Node) []string {
	l, _ := n.Len()
	res := make([]string, l)
	for i := range l {
		c := n.At(i)
		if c.Type().IsLeaf() {
			s, err := encode.Dump(c)
			if err != nil {
				s = "!" + err.Error()
			}
			res[i] = s
			continue
		}
		res[i] = c.Type().String()
	}
	return res
}

func mapStrings(m map[string]rune, ss []string) []rune {
	rs := make([]rune, len(ss))
	for i, s := range ss {
		r, ok := m[s]
		if !ok {
			r = rune(len(m))
			m[s] = r
		}
		rs[i] = r
	}
	return rs
}
