package buffer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	text       string
	lineStarts []ByteOffset
	revisionID RevisionID
	fileType   string
	filePath   string
}

// NewSnapshot creates a standalone snapshot of text.
func NewSnapshot(text string, opts ...Option) *Snapshot {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return newSnapshot(text, NewRevisionID(), o)
}

func newSnapshot(text string, rev RevisionID, o options) *Snapshot {
	return &Snapshot{
		text:       text,
		lineStarts: computeLineStarts(text),
		revisionID: rev,
		fileType:   o.fileType,
		filePath:   o.filePath,
	}
}

// computeLineStarts returns the byte offset of the first byte of every line.
// There is always at least one line, even for empty text.
func computeLineStarts(text string) []ByteOffset {
	starts := make([]ByteOffset, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return starts
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.text
}

// Slice returns text in the given byte range, clamped to the snapshot.
func (s *Snapshot) Slice(start, end ByteOffset) string {
	start = s.clamp(start)
	end = s.clamp(end)
	if start >= end {
		return ""
	}
	return s.text[start:end]
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(len(s.text))
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.text) == 0
}

// RuneAt returns the rune starting at offset.
// Returns utf8.RuneError and size 0 if offset is at or past the end.
func (s *Snapshot) RuneAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= s.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.text[offset:])
}

// RuneBefore returns the rune ending at offset.
// Returns utf8.RuneError and size 0 if offset is at or before the start.
func (s *Snapshot) RuneBefore(offset ByteOffset) (rune, int) {
	if offset <= 0 || offset > s.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(s.text[:offset])
}

// IsRuneBoundary reports whether offset is a valid position: inside
// [0, Len()] and not in the middle of a valid UTF-8 sequence. Each byte of
// an invalid sequence decodes as a separate RuneError, so the offsets
// between them are boundaries too.
func (s *Snapshot) IsRuneBoundary(offset ByteOffset) bool {
	if offset < 0 || offset > s.Len() {
		return false
	}
	if offset == 0 || offset == s.Len() || utf8.RuneStart(s.text[offset]) {
		return true
	}
	for p := offset - 1; p >= 0 && p > offset-utf8.UTFMax; p-- {
		if utf8.RuneStart(s.text[p]) {
			_, size := utf8.DecodeRuneInString(s.text[p:])
			return p+ByteOffset(size) <= offset
		}
	}
	return true
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 {
	return uint32(len(s.lineStarts))
}

// LineStartOffset returns the byte offset of the start of a line.
// Lines past the end map to Len().
func (s *Snapshot) LineStartOffset(line uint32) ByteOffset {
	if int(line) >= len(s.lineStarts) {
		return s.Len()
	}
	return s.lineStarts[line]
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (s *Snapshot) LineEndOffset(line uint32) ByteOffset {
	if int(line)+1 >= len(s.lineStarts) {
		return s.Len()
	}
	return s.lineStarts[line+1] - 1
}

// LineText returns the text of a specific line (without newline).
func (s *Snapshot) LineText(line uint32) string {
	if int(line) >= len(s.lineStarts) {
		return ""
	}
	return s.text[s.LineStartOffset(line):s.LineEndOffset(line)]
}

// LineLen returns the length of a specific line in bytes (without newline).
func (s *Snapshot) LineLen(line uint32) uint32 {
	return uint32(s.LineEndOffset(line) - s.LineStartOffset(line))
}

// OffsetToPoint converts a byte offset to line/column.
// Offsets outside the snapshot are clamped.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point {
	offset = s.clamp(offset)
	// Index of the last line start <= offset.
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	return Point{
		Line:   uint32(line),
		Column: uint32(offset - s.lineStarts[line]),
	}
}

// PointToOffset converts line/column to byte offset.
// The column is clamped to the line length.
func (s *Snapshot) PointToOffset(point Point) ByteOffset {
	if int(point.Line) >= len(s.lineStarts) {
		return s.Len()
	}
	col := point.Column
	if lineLen := s.LineLen(point.Line); col > lineLen {
		col = lineLen
	}
	return s.lineStarts[point.Line] + ByteOffset(col)
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// FileType returns the language identifier of the text (e.g. "go").
func (s *Snapshot) FileType() string {
	return s.fileType
}

// FilePath returns the path the text was loaded from, if any.
func (s *Snapshot) FilePath() string {
	return s.filePath
}

func (s *Snapshot) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > s.Len() {
		return s.Len()
	}
	return offset
}
