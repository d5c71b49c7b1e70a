package buffer

import (
	"errors"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")
	snap := b.Snapshot()

	if snap.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", snap.LineCount())
	}
	for i, want := range []string{"line1", "line2", "line3"} {
		if got := snap.LineText(uint32(i)); got != want {
			t.Errorf("LineText(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestBufferTrailingNewlineLineCount(t *testing.T) {
	snap := NewSnapshot("a\n")
	if snap.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", snap.LineCount())
	}
	if snap.LineText(1) != "" {
		t.Errorf("expected empty last line, got %q", snap.LineText(1))
	}
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if end != 6 {
		t.Errorf("expected end position 6, got %d", end)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
}

func TestBufferInsertErrors(t *testing.T) {
	b := NewBufferFromString("héllo")

	if _, err := b.Insert(99, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
	// Offset 2 is inside the two-byte 'é'.
	if _, err := b.Insert(2, "x"); !errors.Is(err, ErrNotRuneBoundary) {
		t.Errorf("expected ErrNotRuneBoundary, got %v", err)
	}
}

func TestBufferDelete(t *testing.T) {
	b := NewBufferFromString("Hello, World")

	if err := b.Delete(5, 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if b.Text() != "HelloWorld" {
		t.Errorf("expected 'HelloWorld', got %q", b.Text())
	}
	if err := b.Delete(4, 2); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("one")
	snap := b.Snapshot()

	b.SetText("two")

	if snap.Text() != "one" {
		t.Errorf("snapshot changed after SetText: %q", snap.Text())
	}
	if snap.RevisionID() == b.Snapshot().RevisionID() {
		t.Error("expected a new revision after SetText")
	}
}

func TestSnapshotRuneAccess(t *testing.T) {
	snap := NewSnapshot("aé\n")

	tests := []struct {
		name     string
		offset   ByteOffset
		before   bool
		wantRune rune
		wantSize int
	}{
		{"at start", 0, false, 'a', 1},
		{"multibyte at", 1, false, 'é', 2},
		{"newline at", 3, false, '\n', 1},
		{"at end", 4, false, 0xFFFD, 0},
		{"before start", 0, true, 0xFFFD, 0},
		{"multibyte before", 3, true, 'é', 2},
		{"newline before", 4, true, '\n', 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r rune
			var size int
			if tt.before {
				r, size = snap.RuneBefore(tt.offset)
			} else {
				r, size = snap.RuneAt(tt.offset)
			}
			if r != tt.wantRune || size != tt.wantSize {
				t.Errorf("got (%q, %d), want (%q, %d)", r, size, tt.wantRune, tt.wantSize)
			}
		})
	}
}

func TestSnapshotIsRuneBoundary(t *testing.T) {
	snap := NewSnapshot("aé")

	for offset, want := range map[ByteOffset]bool{-1: false, 0: true, 1: true, 2: false, 3: true, 4: false} {
		if got := snap.IsRuneBoundary(offset); got != want {
			t.Errorf("IsRuneBoundary(%d) = %v, want %v", offset, got, want)
		}
	}
}

func TestSnapshotIsRuneBoundaryInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[ByteOffset]bool
	}{
		{"stray continuation", "a\x80b", map[ByteOffset]bool{1: true, 2: true, 3: true}},
		{"truncated sequence", "\xe4\xb8a", map[ByteOffset]bool{1: true, 2: true}},
		{"surrogate encoding", "\xed\xa0\x80", map[ByteOffset]bool{1: true, 2: true}},
		{"stray after valid rune", "中\xad", map[ByteOffset]bool{1: false, 2: false, 3: true}},
		{"valid rune after stray", "\x80é", map[ByteOffset]bool{1: true, 2: false, 3: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(tt.text)
			for offset, want := range tt.want {
				if got := snap.IsRuneBoundary(offset); got != want {
					t.Errorf("IsRuneBoundary(%d) = %v, want %v", offset, got, want)
				}
			}
			// Every offset the decoder stops at must be accepted.
			for off := ByteOffset(0); off < snap.Len(); {
				if !snap.IsRuneBoundary(off) {
					t.Errorf("decoder offset %d rejected", off)
				}
				_, size := snap.RuneAt(off)
				off += ByteOffset(size)
			}
			for off := snap.Len(); off > 0; {
				if !snap.IsRuneBoundary(off) {
					t.Errorf("reverse decoder offset %d rejected", off)
				}
				_, size := snap.RuneBefore(off)
				off -= ByteOffset(size)
			}
		})
	}
}

func TestSnapshotPointConversion(t *testing.T) {
	snap := NewSnapshot("ab\ncde\n\nf")

	tests := []struct {
		offset ByteOffset
		point  Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{3, Point{1, 0}},
		{6, Point{1, 3}},
		{7, Point{2, 0}},
		{8, Point{3, 0}},
		{9, Point{3, 1}},
	}

	for _, tt := range tests {
		if got := snap.OffsetToPoint(tt.offset); got != tt.point {
			t.Errorf("OffsetToPoint(%d) = %v, want %v", tt.offset, got, tt.point)
		}
		if got := snap.PointToOffset(tt.point); got != tt.offset {
			t.Errorf("PointToOffset(%v) = %d, want %d", tt.point, got, tt.offset)
		}
	}

	if got := snap.PointToOffset(Point{Line: 0, Column: 99}); got != 2 {
		t.Errorf("column should clamp to line end, got %d", got)
	}
	if got := snap.OffsetToPoint(100); got != (Point{3, 1}) {
		t.Errorf("offset past end should clamp, got %v", got)
	}
}

func TestSnapshotSliceClamps(t *testing.T) {
	snap := NewSnapshot("hello")
	if got := snap.Slice(-3, 2); got != "he" {
		t.Errorf("Slice(-3, 2) = %q", got)
	}
	if got := snap.Slice(3, 99); got != "lo" {
		t.Errorf("Slice(3, 99) = %q", got)
	}
	if got := snap.Slice(4, 1); got != "" {
		t.Errorf("Slice(4, 1) = %q", got)
	}
}

func TestSnapshotFileType(t *testing.T) {
	b := NewBufferFromString("x", WithFileType("go"), WithFilePath("/tmp/x.go"))
	snap := b.Snapshot()
	if snap.FileType() != "go" || snap.FilePath() != "/tmp/x.go" {
		t.Errorf("unexpected metadata: %q %q", snap.FileType(), snap.FilePath())
	}

	b.SetFileType("python")
	if b.Snapshot().FileType() != "python" {
		t.Errorf("SetFileType not applied")
	}
}

func TestBufferConcurrentSnapshots(t *testing.T) {
	b := NewBufferFromString("abc")
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap := b.Snapshot()
			_ = snap.OffsetToPoint(snap.Len())
		}()
	}
	b.SetText("abcdef")
	wg.Wait()
}

func TestPointCompare(t *testing.T) {
	a := Point{Line: 1, Column: 4}
	b := Point{Line: 2, Column: 0}

	if !a.Before(b) || !b.After(a) {
		t.Error("expected a before b")
	}
	if a.Compare(a) != 0 {
		t.Error("expected equal points to compare 0")
	}
	if (Point{}).IsZero() != true {
		t.Error("zero point should be zero")
	}
}
