package rvalue

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/signadot/rwjson/debug"
	"github.com/signadot/rwjson/ir"
	"github.com/signadot/rwjson/token"
)

const (
	flagEscaped    uint8 = 1 << iota // string value has backslash escapes
	flagKeyEscaped                   // object key has backslash escapes
)

// node is one entry of a document's tape. The children of a container
// follow it on the tape; next is the tape index just past its subtree,
// which is also the index of its next sibling.
type node struct {
	typ   ir.Type
	num   ir.NumType
	flags uint8
	start int // value literal is buf[start:end]
	end   int
	key   int // key literal is buf[key:keyEnd], key == -1 outside objects
	kEnd  int
	len   int
	next  int
}

// document is a parsed buffer with its tape. kids caches, per container
// tape index, the tape indices of its children; it is filled on first
// positional or keyed access.
type document struct {
	buf   []byte
	tape  []node
	kids  map[int][]int
	owned bool
}

func (d *document) children(idx int) []int {
	if k, ok := d.kids[idx]; ok {
		return k
	}
	n := &d.tape[idx]
	res := make([]int, 0, n.len)
	for c := idx + 1; len(res) < n.len; c = d.tape[c].next {
		res = append(res, c)
	}
	if d.kids == nil {
		d.kids = map[int][]int{}
	}
	d.kids[idx] = res
	if debug.Lazy() {
		debug.Logf("rvalue: indexed %d children of %s at offset %d\n", n.len, n.typ, n.start)
	}
	return res
}

func (d *document) str(n *node) string {
	return d.decode(d.buf[n.start+1:n.end-1], n.flags&flagEscaped != 0)
}

func (d *document) keyOf(n *node) string {
	return d.decode(d.buf[n.key+1:n.kEnd-1], n.flags&flagKeyEscaped != 0)
}

// keyIs compares the key of n with k without allocating for keys that
// have no escapes.
func (d *document) keyIs(n *node, k string) bool {
	if n.flags&flagKeyEscaped == 0 {
		return string(d.buf[n.key+1:n.kEnd-1]) == k
	}
	return d.keyOf(n) == k
}

func (d *document) decode(body []byte, escaped bool) string {
	if !escaped {
		return string(body)
	}
	return string(token.AppendUnescaped(make([]byte, 0, len(body)), body))
}

type parser struct {
	buf      []byte
	pos      int
	tape     []node
	depth    int
	maxDepth int
}

func parse(buf []byte, o *loadOpts) (*document, *Error) {
	p := &parser{
		buf:      buf,
		tape:     make([]node, 0, 1+len(buf)/8),
		maxDepth: o.maxDepth,
	}
	if err := p.value(-1, -1, false); err != nil {
		return nil, err
	}
	p.ws()
	if p.pos != len(p.buf) {
		return nil, p.fail(errTrailing)
	}
	if debug.Parse() {
		debug.Logf("rvalue: parsed %d bytes into %d nodes: %s\n", len(buf), len(p.tape), buf)
	}
	return &document{buf: buf, tape: p.tape, owned: o.owned}, nil
}

func (p *parser) fail(err error) *Error {
	return p.failAt(p.pos, err)
}

func (p *parser) failAt(pos int, err error) *Error {
	var pe *token.PosErr
	if errors.As(err, &pe) {
		pos += pe.Off
		err = pe.Err
	}
	line, col := token.NewPosDoc(p.buf).LineCol(pos)
	return &Error{Op: opLoad, Pos: pos, Line: line, Col: col, Err: fmt.Errorf("%w: %w", ErrParse, err)}
}

func (p *parser) ws() {
	for p.pos < len(p.buf) {
		switch p.buf[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) value(key, kEnd int, keyEscaped bool) *Error {
	p.ws()
	if p.pos >= len(p.buf) {
		return p.fail(errUnexpectedEnd)
	}
	idx := len(p.tape)
	p.tape = append(p.tape, node{start: p.pos, key: key, kEnd: kEnd})
	if keyEscaped {
		p.tape[idx].flags |= flagKeyEscaped
	}
	switch c := p.buf[p.pos]; c {
	case '{':
		if err := p.object(idx); err != nil {
			return err
		}
	case '[':
		if err := p.list(idx); err != nil {
			return err
		}
	case '"':
		n, escaped, err := token.ScanString(p.buf[p.pos:])
		if err != nil {
			return p.fail(err)
		}
		p.tape[idx].typ = ir.StringType
		if escaped {
			p.tape[idx].flags |= flagEscaped
		}
		p.pos += n
	case 't':
		if err := p.literal("true"); err != nil {
			return err
		}
		p.tape[idx].typ = ir.TrueType
	case 'f':
		if err := p.literal("false"); err != nil {
			return err
		}
		p.tape[idx].typ = ir.FalseType
	case 'n':
		if err := p.literal("null"); err != nil {
			return err
		}
		p.tape[idx].typ = ir.NullType
	default:
		n, neg, float, err := token.ScanNumber(p.buf[p.pos:])
		if err != nil {
			return p.fail(err)
		}
		p.tape[idx].typ = ir.NumberType
		switch {
		case float:
			p.tape[idx].num = ir.FloatingPoint
		case neg:
			p.tape[idx].num = ir.SignedInteger
		default:
			p.tape[idx].num = ir.UnsignedInteger
		}
		p.pos += n
	}
	p.tape[idx].end = p.pos
	p.tape[idx].next = len(p.tape)
	return nil
}

func (p *parser) literal(lit string) *Error {
	if !bytes.HasPrefix(p.buf[p.pos:], []byte(lit)) {
		return p.fail(errUnexpected)
	}
	p.pos += len(lit)
	return nil
}

func (p *parser) push() *Error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.fail(ErrMaxDepth)
	}
	p.pos++
	p.ws()
	return nil
}

func (p *parser) object(idx int) *Error {
	p.tape[idx].typ = ir.ObjectType
	if err := p.push(); err != nil {
		return err
	}
	if p.pos < len(p.buf) && p.buf[p.pos] == '}' {
		p.pos++
		p.depth--
		return nil
	}
	n := 0
	for {
		p.ws()
		if p.pos >= len(p.buf) {
			return p.fail(errUnexpectedEnd)
		}
		if p.buf[p.pos] != '"' {
			return p.fail(errUnexpected)
		}
		sz, escaped, err := token.ScanString(p.buf[p.pos:])
		if err != nil {
			return p.fail(err)
		}
		key := p.pos
		p.pos += sz
		kEnd := p.pos
		p.ws()
		if p.pos >= len(p.buf) {
			return p.fail(errUnexpectedEnd)
		}
		if p.buf[p.pos] != ':' {
			return p.fail(errUnexpected)
		}
		p.pos++
		if err := p.value(key, kEnd, escaped); err != nil {
			return err
		}
		n++
		if done, err := p.sep('}'); err != nil || done {
			p.tape[idx].len = n
			return err
		}
	}
}

func (p *parser) list(idx int) *Error {
	p.tape[idx].typ = ir.ListType
	if err := p.push(); err != nil {
		return err
	}
	if p.pos < len(p.buf) && p.buf[p.pos] == ']' {
		p.pos++
		p.depth--
		return nil
	}
	n := 0
	for {
		if err := p.value(-1, -1, false); err != nil {
			return err
		}
		n++
		if done, err := p.sep(']'); err != nil || done {
			p.tape[idx].len = n
			return err
		}
	}
}

// sep consumes the separator after a container member, reporting done
// when it was the closing delimiter.
func (p *parser) sep(closer byte) (bool, *Error) {
	p.ws()
	if p.pos >= len(p.buf) {
		return false, p.fail(errUnexpectedEnd)
	}
	switch p.buf[p.pos] {
	case ',':
		p.pos++
		return false, nil
	case closer:
		p.pos++
		p.depth--
		return true, nil
	default:
		return false, p.fail(errUnexpected)
	}
}
