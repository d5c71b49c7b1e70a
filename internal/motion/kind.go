package motion

import (
	"errors"
	"fmt"

	"github.com/dshills/hxmotion/internal/motion/boundary"
)

// ErrUnknownMotion is returned when a motion name cannot be parsed.
var ErrUnknownMotion = errors.New("motion: unknown motion")

// Kind identifies a word motion.
type Kind uint8

const (
	// NextWordStart moves to the start of the next word (w).
	NextWordStart Kind = iota
	// PrevWordStart moves to the start of the previous word (b).
	PrevWordStart
	// NextWordEnd moves to the end of the next word (e).
	NextWordEnd
	// NextLongWordStart is NextWordStart with punctuation joined to words (W).
	NextLongWordStart
	// PrevLongWordStart is PrevWordStart with punctuation joined to words (B).
	PrevLongWordStart
	// NextLongWordEnd is NextWordEnd with punctuation joined to words (E).
	NextLongWordEnd

	kindCount
)

type kindInfo struct {
	name string
	key  string
	dir  boundary.Direction
	end  bool
	long bool
}

var kinds = [kindCount]kindInfo{
	NextWordStart:     {name: "next_word_start", key: "w", dir: boundary.Forward},
	PrevWordStart:     {name: "prev_word_start", key: "b", dir: boundary.Backward},
	NextWordEnd:       {name: "next_word_end", key: "e", dir: boundary.Forward, end: true},
	NextLongWordStart: {name: "next_long_word_start", key: "W", dir: boundary.Forward, long: true},
	PrevLongWordStart: {name: "prev_long_word_start", key: "B", dir: boundary.Backward, long: true},
	NextLongWordEnd:   {name: "next_long_word_end", key: "E", dir: boundary.Forward, end: true, long: true},
}

// Kinds returns every motion kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k names a motion.
func (k Kind) Valid() bool {
	return k < kindCount
}

// String returns the motion's snake_case name.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kinds[k].name
}

// Key returns the single-key binding for the motion.
func (k Kind) Key() string {
	if !k.Valid() {
		return ""
	}
	return kinds[k].key
}

// Direction returns the scan direction.
func (k Kind) Direction() boundary.Direction {
	if !k.Valid() {
		return boundary.Forward
	}
	return kinds[k].dir
}

// IsLong reports whether the motion treats punctuation as part of words.
func (k Kind) IsLong() bool {
	return k.Valid() && kinds[k].long
}

// IsEnd reports whether the motion lands on the last character of a word.
func (k Kind) IsEnd() bool {
	return k.Valid() && kinds[k].end
}

// Predicate returns the boundary predicate for the motion.
func (k Kind) Predicate() boundary.Predicate {
	if k.IsEnd() {
		return boundary.WordEnd(k.IsLong())
	}
	return boundary.WordStart(k.IsLong())
}

// ParseKind parses a motion name ("next_word_start") or key ("w").
func ParseKind(s string) (Kind, error) {
	for k := Kind(0); k < kindCount; k++ {
		if s == kinds[k].name || s == kinds[k].key {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMotion, s)
}
