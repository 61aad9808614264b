//go:build rvalue_strict

package rvalue

// DefaultMode is Strict when built with the rvalue_strict tag.
const DefaultMode = Strict
