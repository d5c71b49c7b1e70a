package boundary

import (
	"errors"
	"fmt"

	"github.com/dshills/hxmotion/internal/engine/buffer"
)

// ErrInvalidPosition is wrapped by PositionError.
var ErrInvalidPosition = errors.New("boundary: invalid start position")

// PositionError describes a scan started outside the snapshot or inside a
// multi-byte rune.
type PositionError struct {
	Offset buffer.ByteOffset
	Len    buffer.ByteOffset
	Reason string
}

// Error implements error.
func (e *PositionError) Error() string {
	return fmt.Sprintf("boundary: start offset %d in snapshot of length %d: %s", e.Offset, e.Len, e.Reason)
}

// Unwrap returns ErrInvalidPosition.
func (e *PositionError) Unwrap() error {
	return ErrInvalidPosition
}

// checkStart panics when start is not a valid scan origin in src.
func checkStart(src Source, start buffer.ByteOffset) {
	n := src.Len()
	switch {
	case start < 0 || start > n:
		panic(&PositionError{Offset: start, Len: n, Reason: "out of range"})
	case !src.IsRuneBoundary(start):
		panic(&PositionError{Offset: start, Len: n, Reason: "not a rune boundary"})
	}
}
