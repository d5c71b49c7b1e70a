package charclass

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// wordTable holds the characters that are Word in every scope.
var wordTable = rangetable.Merge(unicode.L, unicode.M, unicode.N, rangetable.New('_'))

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// Classifier classifies runes, consulting per-scope word character tables.
// A Classifier is immutable after construction and safe for concurrent use.
type Classifier struct {
	regions   map[Region]*unicode.RangeTable
	languages map[string]*unicode.RangeTable
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRegionWordChars makes every rune in chars a Word character inside
// region, for all languages.
func WithRegionWordChars(region Region, chars string) Option {
	return func(c *Classifier) {
		c.regions[region] = mergeTable(c.regions[region], chars)
	}
}

// WithLanguageWordChars makes every rune in chars a Word character in code
// regions of language.
func WithLanguageWordChars(language, chars string) Option {
	return func(c *Classifier) {
		c.languages[language] = mergeTable(c.languages[language], chars)
	}
}

func mergeTable(existing *unicode.RangeTable, chars string) *unicode.RangeTable {
	if chars == "" {
		return existing
	}
	tbl := rangetable.New([]rune(chars)...)
	if existing == nil {
		return tbl
	}
	return rangetable.Merge(existing, tbl)
}

// NewClassifier creates a classifier.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		regions:   make(map[Region]*unicode.RangeTable),
		languages: make(map[string]*unicode.RangeTable),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the class of r within scope.
func (c *Classifier) Classify(r rune, scope Scope) Class {
	if isSpace(r) {
		return Whitespace
	}
	if unicode.Is(wordTable, r) {
		return Word
	}
	if c == nil {
		return Punctuation
	}
	if tbl := c.regions[scope.Region]; tbl != nil && unicode.Is(tbl, r) {
		return Word
	}
	if scope.Region == RegionCode {
		if tbl := c.languages[scope.Language]; tbl != nil && unicode.Is(tbl, r) {
			return Word
		}
	}
	return Punctuation
}
