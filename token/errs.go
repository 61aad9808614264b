package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8           = errors.New("bad utf8")
	ErrUnterminated      = errors.New("unterminated")
	ErrNumberLeadingZero = errors.New("leading zero")
	ErrBadEscape         = errors.New("bad escape")
	ErrBadUnicode        = errors.New("bad unicode")
	ErrUnicodeControl    = errors.New("unicode control")
	ErrNumber            = errors.New("number")
	ErrNotString         = errors.New("not a string literal")
)

// PosErr is a lexical error at a byte offset relative to the start of the
// scanned literal.
type PosErr struct {
	Off int
	Err error
}

func (e *PosErr) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Err, e.Off)
}

func (e *PosErr) Unwrap() error {
	return e.Err
}

func posErr(off int, err error) error {
	return &PosErr{Off: off, Err: err}
}
