package charclass

import "github.com/dshills/hxmotion/internal/engine/buffer"

// Region is the lexical region of a scope.
type Region uint8

const (
	// RegionCode is ordinary source text.
	RegionCode Region = iota
	// RegionString is the inside of a string literal.
	RegionString
	// RegionComment is the inside of a line or block comment.
	RegionComment
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionCode:
		return "code"
	case RegionString:
		return "string"
	case RegionComment:
		return "comment"
	default:
		return "unknown"
	}
}

// ParseRegion parses a region name. Unknown names map to RegionCode.
func ParseRegion(s string) (Region, bool) {
	switch s {
	case "code":
		return RegionCode, true
	case "string":
		return RegionString, true
	case "comment":
		return RegionComment, true
	}
	return RegionCode, false
}

// Scope is the lexical context a character is classified in.
// The zero Scope is plain code in an unknown language.
type Scope struct {
	Language string
	Region   Region
}

// String returns "language/region".
func (s Scope) String() string {
	lang := s.Language
	if lang == "" {
		lang = "plain"
	}
	return lang + "/" + s.Region.String()
}

// Source is the text a ScopeResolver inspects.
type Source interface {
	Slice(start, end buffer.ByteOffset) string
	FileType() string
}

// ScopeResolver resolves the scope at a position.
type ScopeResolver interface {
	ScopeAt(src Source, offset buffer.ByteOffset) Scope
}

// ScopeFunc adapts a function to ScopeResolver.
type ScopeFunc func(src Source, offset buffer.ByteOffset) Scope

// ScopeAt implements ScopeResolver.
func (f ScopeFunc) ScopeAt(src Source, offset buffer.ByteOffset) Scope {
	return f(src, offset)
}

// FixedScope is a ScopeResolver that always returns the same scope.
type FixedScope Scope

// ScopeAt implements ScopeResolver.
func (f FixedScope) ScopeAt(Source, buffer.ByteOffset) Scope {
	return Scope(f)
}
