package motion_test

import (
	"errors"
	"testing"

	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/motion"
	"github.com/dshills/hxmotion/internal/motion/boundary"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want motion.Kind
	}{
		{"w", motion.NextWordStart},
		{"b", motion.PrevWordStart},
		{"e", motion.NextWordEnd},
		{"W", motion.NextLongWordStart},
		{"B", motion.PrevLongWordStart},
		{"E", motion.NextLongWordEnd},
		{"next_word_start", motion.NextWordStart},
		{"prev_long_word_start", motion.PrevLongWordStart},
		{"next_long_word_end", motion.NextLongWordEnd},
	}
	for _, tt := range tests {
		got, err := motion.ParseKind(tt.in)
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := motion.ParseKind("x"); !errors.Is(err, motion.ErrUnknownMotion) {
		t.Errorf("ParseKind(x) error = %v, want ErrUnknownMotion", err)
	}
}

func TestKindProperties(t *testing.T) {
	kinds := motion.Kinds()
	if len(kinds) != 6 {
		t.Fatalf("Kinds() returned %d kinds, want 6", len(kinds))
	}
	for _, k := range kinds {
		if !k.Valid() {
			t.Errorf("%v should be valid", k)
		}
		if k.Key() == "" {
			t.Errorf("%v has no key", k)
		}
		back, err := motion.ParseKind(k.String())
		if err != nil || back != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), back, err)
		}
	}

	if motion.PrevWordStart.Direction() != boundary.Backward {
		t.Error("prev word start should scan backward")
	}
	if motion.NextWordEnd.Direction() != boundary.Forward {
		t.Error("next word end should scan forward")
	}
	if !motion.NextLongWordEnd.IsLong() || !motion.NextLongWordEnd.IsEnd() {
		t.Error("E should be a long end motion")
	}
	if motion.NextWordStart.IsLong() || motion.NextWordStart.IsEnd() {
		t.Error("w should be a short start motion")
	}

	invalid := motion.Kind(42)
	if invalid.Valid() {
		t.Error("Kind(42) should be invalid")
	}
	if invalid.String() != "Kind(42)" {
		t.Errorf("String() = %q", invalid.String())
	}
}

func TestFinderFind(t *testing.T) {
	f := motion.NewFinder(nil)
	snap := buffer.NewSnapshot("foo-bar baz")

	tests := []struct {
		kind      motion.Kind
		start     buffer.ByteOffset
		wantOff   buffer.ByteOffset
		wantFound bool
	}{
		{motion.NextWordStart, 0, 3, true},
		{motion.NextLongWordStart, 0, 8, true},
		{motion.PrevWordStart, 8, 4, true},
		{motion.PrevLongWordStart, 11, 8, true},
		{motion.NextWordEnd, 0, 3, true},
		{motion.NextLongWordEnd, 0, 7, true},
		{motion.NextWordStart, 8, 11, false},
	}
	for _, tt := range tests {
		got := f.Find(tt.kind, snap, tt.start)
		if got.Offset != tt.wantOff || got.Found != tt.wantFound {
			t.Errorf("Find(%v, %d) = %+v, want {%d, found=%v}", tt.kind, tt.start, got, tt.wantOff, tt.wantFound)
		}
	}
}

func TestFinderMove(t *testing.T) {
	f := motion.NewFinder(nil)
	snap := buffer.NewSnapshot("one two three")

	tests := []struct {
		name      string
		kind      motion.Kind
		start     buffer.ByteOffset
		count     int
		wantHead  buffer.ByteOffset
		wantFound bool
	}{
		{"w once", motion.NextWordStart, 0, 1, 4, true},
		{"w twice", motion.NextWordStart, 0, 2, 8, true},
		{"w past end lands on last char", motion.NextWordStart, 0, 5, 12, false},
		{"zero count is one", motion.NextWordStart, 0, 0, 4, true},
		{"e lands on last char of word", motion.NextWordEnd, 0, 1, 2, true},
		{"e from word end", motion.NextWordEnd, 2, 1, 6, true},
		{"e twice", motion.NextWordEnd, 0, 2, 6, true},
		{"e at last word", motion.NextWordEnd, 8, 1, 12, false},
		{"b twice", motion.PrevWordStart, 12, 2, 4, true},
		{"b to buffer start", motion.PrevWordStart, 4, 3, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, res := f.Move(tt.kind, snap, tt.start, tt.count)
			if head != tt.wantHead {
				t.Errorf("head = %d, want %d", head, tt.wantHead)
			}
			if res.Found != tt.wantFound {
				t.Errorf("found = %v, want %v", res.Found, tt.wantFound)
			}
		})
	}
}

func TestFinderMoveOverInvalidUTF8(t *testing.T) {
	f := motion.NewFinder(nil)
	snap := buffer.NewSnapshot("a\x80b c")

	tests := []struct {
		name     string
		kind     motion.Kind
		start    buffer.ByteOffset
		wantHead buffer.ByteOffset
	}{
		{"w onto stray byte", motion.NextWordStart, 0, 1},
		{"w from stray byte", motion.NextWordStart, 1, 2},
		{"e onto stray byte", motion.NextWordEnd, 0, 1},
		{"b onto stray byte", motion.PrevWordStart, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, _ := f.Move(tt.kind, snap, tt.start, 1)
			if head != tt.wantHead {
				t.Fatalf("head = %d, want %d", head, tt.wantHead)
			}
			// The head must be usable as the start of the next motion.
			f.Move(tt.kind, snap, head, 1)
		})
	}

	head, res := f.Move(motion.NextWordStart, snap, 0, 3)
	if head != 4 || !res.Found {
		t.Errorf("3w = %d found=%v, want 4 found=true", head, res.Found)
	}
}

func TestFinderRepeatChainsThroughHead(t *testing.T) {
	f := motion.NewFinder(nil)
	snap := buffer.NewSnapshot("ab-cd")

	// e from 'a' ends at 'b'; the second e must continue from 'b' and stop
	// at '-', not skip to the end of "cd".
	res := f.Repeat(motion.NextWordEnd, snap, 0, 2)
	if !res.Found || res.Offset != 3 {
		t.Errorf("Repeat = %+v, want found at 3", res)
	}
}

func TestFinderRepeatSumsSteps(t *testing.T) {
	f := motion.NewFinder(nil)
	snap := buffer.NewSnapshot("a b c")

	one := f.Find(motion.NextWordStart, snap, 0)
	two := f.Repeat(motion.NextWordStart, snap, 0, 2)
	if two.Offset != 4 {
		t.Fatalf("Repeat offset = %d, want 4", two.Offset)
	}
	if two.Steps != one.Steps*2 {
		t.Errorf("Steps = %d, want %d", two.Steps, one.Steps*2)
	}
}

func TestFinderSingleLine(t *testing.T) {
	f := motion.NewFinder(nil, motion.WithSpan(boundary.SingleLine))
	snap := buffer.NewSnapshot("foo\nbar")

	head, res := f.Move(motion.NextWordStart, snap, 0, 1)
	if res.Found {
		t.Errorf("expected clamped at the newline, got %+v", res)
	}
	if head != 3 {
		t.Errorf("head = %d, want 3", head)
	}
}

func TestHeadWithoutProgress(t *testing.T) {
	snap := buffer.NewSnapshot("abc")
	res := boundary.Result{Offset: 3}
	if got := motion.Head(motion.NextWordStart, snap, 3, res); got != 3 {
		t.Errorf("Head = %d, want 3", got)
	}
}
