package ir

import "errors"

var (
	ErrTypeMismatch = errors.New("type mismatch")
	ErrNotContainer = errors.New("not a container")
	ErrRange        = errors.New("value out of range")
)
