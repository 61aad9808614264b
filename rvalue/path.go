package rvalue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/rwjson/token"
)

// Segment is one step of a kinded path: an object key or a list position.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	if needsQuote(s.Key) {
		return token.Quote(s.Key)
	}
	return s.Key
}

func needsQuote(k string) bool {
	return k == "" || strings.ContainsAny(k, ".[]\" \t\r\n\\")
}

// FormatPath returns the text of a kinded path, the inverse of ParsePath.
func FormatPath(segs []Segment) string {
	b := &strings.Builder{}
	for i, s := range segs {
		if i > 0 && !s.IsIndex {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// ParsePath parses a kinded path. Keys are separated by '.', list
// positions written "[n]", and keys containing special characters quoted
// as JSON strings:
//
//	a.b[0]."key with spaces"[2]
//
// The empty path has no segments and denotes the value itself.
func ParsePath(p string) ([]Segment, error) {
	var res []Segment
	i := 0
	for i < len(p) {
		switch c := p[i]; {
		case c == '[':
			j := strings.IndexByte(p[i:], ']')
			if j < 0 {
				return nil, pathErr(p, i, "unterminated index")
			}
			n, err := strconv.Atoi(p[i+1 : i+j])
			if err != nil || n < 0 {
				return nil, pathErr(p, i, "bad index")
			}
			res = append(res, Segment{Index: n, IsIndex: true})
			i += j + 1
			continue
		case c == '.':
			if i == 0 {
				return nil, pathErr(p, i, "leading '.'")
			}
			i++
		case i != 0:
			return nil, pathErr(p, i, "expected '.' or '['")
		}
		if i < len(p) && p[i] == '"' {
			n, _, err := token.ScanString([]byte(p[i:]))
			if err != nil {
				return nil, pathErr(p, i, err.Error())
			}
			k, err := token.Unquote([]byte(p[i : i+n]))
			if err != nil {
				return nil, pathErr(p, i, err.Error())
			}
			res = append(res, Segment{Key: k})
			i += n
			continue
		}
		j := i
		for j < len(p) && p[j] != '.' && p[j] != '[' && p[j] != '"' {
			j++
		}
		if j == i {
			return nil, pathErr(p, i, "empty key")
		}
		res = append(res, Segment{Key: p[i:j]})
		i = j
	}
	return res, nil
}

func pathErr(p string, off int, msg string) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrBadPath, p, off, msg)
}

// GetPath follows a kinded path from v. A malformed path fails with
// ErrBadPath; a missing step fails as Get or Index would.
func (v Value) GetPath(path string) Value {
	segs, err := ParsePath(path)
	if err != nil {
		return v.fail(&Error{Op: opPath, Key: path, Err: err})
	}
	res := v
	for _, s := range segs {
		if s.IsIndex {
			res = res.Index(s.Index)
		} else {
			res = res.Get(s.Key)
		}
		if res.failure() != nil {
			return res
		}
	}
	return res
}
