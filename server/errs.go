package server

import (
	"errors"
	"fmt"
)

var (
	ErrConfig     = errors.New("invalid config")
	ErrNotFound   = errors.New("document not found")
	ErrBadRequest = errors.New("bad request")
	ErrTooLarge   = errors.New("request body too large")
	ErrEval       = errors.New("evaluation failed")
)

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}
