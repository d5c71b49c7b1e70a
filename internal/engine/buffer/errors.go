package buffer

import "errors"

// Buffer errors.
var (
	// ErrOffsetOutOfRange indicates an offset outside [0, Len()].
	ErrOffsetOutOfRange = errors.New("buffer: offset out of range")

	// ErrInvalidRange indicates a range whose start is after its end.
	ErrInvalidRange = errors.New("buffer: invalid range")

	// ErrNotRuneBoundary indicates an offset that splits a UTF-8 sequence.
	ErrNotRuneBoundary = errors.New("buffer: offset is not on a rune boundary")
)
