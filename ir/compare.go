package ir

import (
	"cmp"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Values order by kind first (Null < False < True < Number < String < List
// < Object), with error-marked values below all kinds. Numbers compare by
// value: integers exactly regardless of subkind, and a float against any
// number as float64. Lists compare element-wise, objects entry-wise by key
// then value, the shorter prefix first.
func Compare(a, b Source) int {
	errA, errB := a.Err() != nil, b.Err() != nil
	switch {
	case errA && errB:
		return 0
	case errA:
		return -1
	case errB:
		return 1
	}
	ta, tb := a.Type(), b.Type()
	if ta != tb {
		return cmp.Compare(ta, tb)
	}
	switch ta {
	case NumberType:
		return compareNumbers(numOf(a), numOf(b))
	case StringType:
		sa, _ := a.Str()
		sb, _ := b.Str()
		return strings.Compare(sa, sb)
	case ListType, ObjectType:
		return compareChildren(children(a), children(b))
	}
	return 0
}

// Equal reports whether Compare(a, b) == 0.
func Equal(a, b Source) bool {
	return Compare(a, b) == 0
}

// bigPrec is the mantissa precision used for numbers outside the Go
// numeric types.
const bigPrec = 512

type num struct {
	nt  NumType
	i   int64
	u   uint64
	f   float64
	big *big.Float
	bad bool
}

func numOf(s Source) num {
	res := num{}
	nt, err := s.NumType()
	if err != nil {
		return num{bad: true}
	}
	res.nt = nt
	if raw := LiteralText(s); len(raw) > 0 {
		return numOfLiteral(nt, string(raw))
	}
	switch nt {
	case UnsignedInteger:
		res.u, err = s.Uint()
		res.f = float64(res.u)
	case SignedInteger:
		res.i, err = s.Int()
		res.f = float64(res.i)
	default:
		res.f, err = s.Float()
	}
	res.bad = err != nil
	return res
}

// numOfLiteral reads a number from its text. A literal out of range for
// its subkind is kept as a big.Float.
func numOfLiteral(nt NumType, s string) num {
	res := num{nt: nt}
	var err error
	switch nt {
	case UnsignedInteger:
		res.u, err = strconv.ParseUint(s, 10, 64)
		res.f = float64(res.u)
	case SignedInteger:
		res.i, err = strconv.ParseInt(s, 10, 64)
		res.f = float64(res.i)
	default:
		res.f, err = strconv.ParseFloat(s, 64)
	}
	if err == nil {
		return res
	}
	b, _, err := big.ParseFloat(s, 10, bigPrec, big.ToNearestEven)
	if err != nil {
		return num{bad: true}
	}
	res.big = b
	res.f, _ = b.Float64()
	return res
}

// bigFloat returns n as a big.Float, or nil for NaN.
func (n num) bigFloat() *big.Float {
	switch {
	case n.big != nil:
		return n.big
	case n.nt == UnsignedInteger:
		return new(big.Float).SetPrec(bigPrec).SetUint64(n.u)
	case n.nt == SignedInteger:
		return new(big.Float).SetPrec(bigPrec).SetInt64(n.i)
	case math.IsNaN(n.f):
		return nil
	}
	return new(big.Float).SetPrec(bigPrec).SetFloat64(n.f)
}

func compareNumbers(a, b num) int {
	switch {
	case a.bad && b.bad:
		return 0
	case a.bad:
		return -1
	case b.bad:
		return 1
	}
	if a.big != nil || b.big != nil {
		fa, fb := a.bigFloat(), b.bigFloat()
		if fa != nil && fb != nil {
			return fa.Cmp(fb)
		}
		return cmp.Compare(a.f, b.f)
	}
	if a.nt == FloatingPoint || b.nt == FloatingPoint {
		return cmp.Compare(a.f, b.f)
	}
	switch {
	case a.nt == UnsignedInteger && b.nt == UnsignedInteger:
		return cmp.Compare(a.u, b.u)
	case a.nt == SignedInteger && b.nt == SignedInteger:
		return cmp.Compare(a.i, b.i)
	case a.nt == SignedInteger:
		if a.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.i), b.u)
	default:
		if b.i < 0 {
			return 1
		}
		return cmp.Compare(a.u, uint64(b.i))
	}
}

type entry struct {
	key string
	val Source
}

func children(s Source) []entry {
	var res []entry
	s.Range(func(key string, child Source) error {
		res = append(res, entry{key: key, val: child})
		return nil
	})
	return res
}

func compareChildren(a, b []entry) int {
	for i := range min(len(a), len(b)) {
		if c := strings.Compare(a[i].key, b[i].key); c != 0 {
			return c
		}
		if c := Compare(a[i].val, b[i].val); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}
