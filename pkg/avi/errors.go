package avi

import (
	"errors"
	"fmt"
)

// Structural errors reported by Parse.
var (
	ErrNotRIFF         = errors.New("not a RIFF file")
	ErrSizeMismatch    = errors.New("RIFF size does not match file length")
	ErrNotAVI          = errors.New("RIFF form is not AVI")
	ErrMissingList     = errors.New("required list not found")
	ErrUnexpectedChunk = errors.New("unexpected chunk")
	ErrUnknownStream   = errors.New("unknown stream type")
)

// Error is returned by every operation of this package.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("avi: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
