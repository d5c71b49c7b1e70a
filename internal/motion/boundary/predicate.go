package boundary

import "github.com/dshills/hxmotion/internal/motion/charclass"

func classOf(st *State, r rune, long bool) charclass.Class {
	c := st.Class(r)
	if long {
		return c.Coalesce()
	}
	return c
}

// WordStart returns the predicate for next and previous word start.
//
// Blanks on the right never form a boundary. A newline on the left always
// does, so the first character of a line is a word start. Otherwise the
// boundary is a class change into non-whitespace. With long set, Word and
// Punctuation compare equal.
func WordStart(long bool) Predicate {
	return func(left, right rune, st *State) bool {
		rc := classOf(st, right, long)
		st.Flipped = classOf(st, left, long) != rc && rc != charclass.Whitespace
		if charclass.IsBlank(right) {
			return false
		}
		if charclass.IsNewline(left) {
			return true
		}
		return st.Flipped
	}
}

// WordEnd returns the predicate for next word end. The boundary lies
// just past the last character of a run, where non-whitespace on the left
// meets a different class on the right. The pair straddling the start
// position is skipped so that repeating the motion from a word end moves
// on to the next word.
func WordEnd(long bool) Predicate {
	return func(left, right rune, st *State) bool {
		if st.Steps < 2 {
			return false
		}
		lc := classOf(st, left, long)
		if lc == charclass.Whitespace {
			return false
		}
		st.Flipped = lc != classOf(st, right, long)
		return st.Flipped
	}
}
