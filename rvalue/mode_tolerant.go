//go:build !rvalue_strict

package rvalue

// DefaultMode is Tolerant unless built with the rvalue_strict tag.
const DefaultMode = Tolerant
