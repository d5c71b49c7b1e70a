package charclass

// Class is the classification of a single character.
type Class uint8

const (
	// Whitespace is any Unicode white space, newline included.
	Whitespace Class = iota
	// Punctuation is the fallback class for everything that is not
	// word or whitespace.
	Punctuation
	// Word is letters, marks, digits, '_' and scope word characters.
	Word
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case Whitespace:
		return "whitespace"
	case Punctuation:
		return "punctuation"
	case Word:
		return "word"
	default:
		return "unknown"
	}
}

// Coalesce folds Punctuation into Word. Long-word motions compare
// coalesced classes so that only whitespace separates words.
func (c Class) Coalesce() Class {
	if c == Punctuation {
		return Word
	}
	return c
}

// IsNewline reports whether r is the newline sentinel.
func IsNewline(r rune) bool {
	return r == '\n'
}

// IsBlank reports whether r is white space other than newline.
func IsBlank(r rune) bool {
	return r != '\n' && isSpace(r)
}
