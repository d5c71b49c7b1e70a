package motion

import (
	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/motion/boundary"
)

// Finder applies motions with a shared scanner.
type Finder struct {
	scanner *boundary.Scanner
	span    boundary.Span
}

// FinderOption configures a Finder.
type FinderOption func(*Finder)

// WithSpan sets the span policy for every scan. The default is MultiLine.
func WithSpan(span boundary.Span) FinderOption {
	return func(f *Finder) {
		f.span = span
	}
}

// NewFinder creates a finder over scanner.
func NewFinder(scanner *boundary.Scanner, opts ...FinderOption) *Finder {
	if scanner == nil {
		scanner = boundary.NewScanner(nil, nil)
	}
	f := &Finder{scanner: scanner, span: boundary.MultiLine}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Scanner returns the underlying scanner.
func (f *Finder) Scanner() *boundary.Scanner {
	return f.scanner
}

// Find runs a single scan for kind from offset.
func (f *Finder) Find(kind Kind, src boundary.Source, offset buffer.ByteOffset) boundary.Result {
	return f.scanner.Scan(src, offset, kind.Direction(), f.span, kind.Predicate())
}

// Repeat applies kind count times, each application starting at the head
// of the previous one. It stops early once a scan is clamped. The returned
// result is the last scan's, with Steps summed over all scans.
func (f *Finder) Repeat(kind Kind, src boundary.Source, offset buffer.ByteOffset, count int) boundary.Result {
	_, res := f.Move(kind, src, offset, count)
	return res
}

// Move applies kind count times from offset and returns the new cursor
// head together with the final scan result.
func (f *Finder) Move(kind Kind, src boundary.Source, offset buffer.ByteOffset, count int) (buffer.ByteOffset, boundary.Result) {
	if count < 1 {
		count = 1
	}

	var res boundary.Result
	head := offset
	steps := 0
	for i := 0; i < count; i++ {
		res = f.Find(kind, src, head)
		steps += res.Steps
		head = Head(kind, src, head, res)
		if res.Clamped() {
			break
		}
	}
	res.Steps = steps
	return head, res
}

// Head converts a scan result into a cursor head. Scan offsets sit between
// characters; a head sits on one. End motions land on the character before
// the boundary, and a forward scan clamped at the end of the text lands on
// the last character. A scan that consumed nothing leaves the head at start.
func Head(kind Kind, src boundary.Source, start buffer.ByteOffset, res boundary.Result) buffer.ByteOffset {
	if res.Steps == 0 {
		return start
	}
	off := res.Offset
	if kind.IsEnd() || off == src.Len() {
		if _, size := src.RuneBefore(off); size > 0 {
			off -= buffer.ByteOffset(size)
		}
	}
	return off
}
