package boundary

import (
	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/motion/charclass"
)

// Direction is the scan direction.
type Direction uint8

const (
	// Forward scans toward the end of the buffer.
	Forward Direction = iota
	// Backward scans toward the start of the buffer.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Span limits how far a scan may travel.
type Span uint8

const (
	// MultiLine scans across newlines until the buffer start or end.
	MultiLine Span = iota
	// SingleLine clamps at the first newline in the scan direction.
	SingleLine
)

// String returns the span name.
func (s Span) String() string {
	if s == SingleLine {
		return "single-line"
	}
	return "multi-line"
}

// Source is the read-only text a scan walks.
type Source interface {
	charclass.Source
	Len() buffer.ByteOffset
	RuneAt(offset buffer.ByteOffset) (rune, int)
	RuneBefore(offset buffer.ByteOffset) (rune, int)
	IsRuneBoundary(offset buffer.ByteOffset) bool
}

// Result is the outcome of a scan.
type Result struct {
	// Offset is the position between the last tested pair, or the limit
	// the scan was clamped at.
	Offset buffer.ByteOffset

	// Found is true when the predicate reported a boundary, false when
	// the scan was clamped.
	Found bool

	// Steps is the number of characters consumed.
	Steps int
}

// Clamped reports whether the scan hit a limit before finding a boundary.
func (r Result) Clamped() bool {
	return !r.Found
}

// State is the per-scan data passed to a predicate.
type State struct {
	// Scope is resolved at the start position and fixed for the scan.
	Scope charclass.Scope

	// Classifier classifies runes within Scope.
	Classifier *charclass.Classifier

	// Flipped records whether the most recently tested pair changed class
	// into non-whitespace. Predicates overwrite it on every call, so it
	// describes the last pair only and never carries over from earlier
	// pairs. It starts false and lives for a single scan.
	Flipped bool

	// Steps is the number of characters consumed before the current call.
	Steps int
}

// Class classifies r within the scan's scope.
func (s *State) Class(r rune) charclass.Class {
	return s.Classifier.Classify(r, s.Scope)
}

// Predicate reports whether a boundary lies between left and right.
// Arguments are always in buffer order: left precedes right, whatever the
// scan direction.
type Predicate func(left, right rune, st *State) bool

// Scanner finds boundaries in snapshots.
type Scanner struct {
	classifier *charclass.Classifier
	resolver   charclass.ScopeResolver
}

// NewScanner creates a scanner. A nil resolver yields plain code scope for
// the snapshot's file type.
func NewScanner(classifier *charclass.Classifier, resolver charclass.ScopeResolver) *Scanner {
	if classifier == nil {
		classifier = charclass.NewClassifier()
	}
	return &Scanner{classifier: classifier, resolver: resolver}
}

// Classifier returns the scanner's classifier.
func (s *Scanner) Classifier() *charclass.Classifier {
	return s.classifier
}

// ScopeAt resolves the scope at offset.
func (s *Scanner) ScopeAt(src charclass.Source, offset buffer.ByteOffset) charclass.Scope {
	if s.resolver == nil {
		return charclass.Scope{Language: src.FileType()}
	}
	return s.resolver.ScopeAt(src, offset)
}

// Scan walks src from start in dir until pred reports a boundary or the
// span limit is reached. The character adjacent to start is always
// consumed before the first test, so a found result never equals start.
//
// Scan panics with a *PositionError if start is out of range or not on a
// rune boundary.
func (s *Scanner) Scan(src Source, start buffer.ByteOffset, dir Direction, span Span, pred Predicate) Result {
	checkStart(src, start)

	st := &State{
		Scope:      s.ScopeAt(src, start),
		Classifier: s.classifier,
	}

	if dir == Backward {
		return scanBackward(src, start, span, pred, st)
	}
	return scanForward(src, start, span, pred, st)
}

func scanForward(src Source, offset buffer.ByteOffset, span Span, pred Predicate, st *State) Result {
	var prev rune
	for {
		r, size := src.RuneAt(offset)
		if size == 0 {
			return Result{Offset: offset, Steps: st.Steps}
		}
		if span == SingleLine && charclass.IsNewline(r) {
			return Result{Offset: offset, Steps: st.Steps}
		}
		if st.Steps > 0 && pred(prev, r, st) {
			return Result{Offset: offset, Found: true, Steps: st.Steps}
		}
		prev = r
		offset += buffer.ByteOffset(size)
		st.Steps++
	}
}

func scanBackward(src Source, offset buffer.ByteOffset, span Span, pred Predicate, st *State) Result {
	var next rune
	for {
		r, size := src.RuneBefore(offset)
		if size == 0 {
			return Result{Offset: offset, Steps: st.Steps}
		}
		if span == SingleLine && charclass.IsNewline(r) {
			return Result{Offset: offset, Steps: st.Steps}
		}
		if st.Steps > 0 && pred(r, next, st) {
			return Result{Offset: offset, Found: true, Steps: st.Steps}
		}
		next = r
		offset -= buffer.ByteOffset(size)
		st.Steps++
	}
}
