package jot

import "errors"

var (
	// ErrBadDelta marks a delta that does not fit the value it is
	// applied to, or whose payload cannot be decoded.
	ErrBadDelta = errors.New("bad delta")

	// ErrBadIndex marks a list delta key that is not a valid index.
	ErrBadIndex = errors.New("bad index")
)
