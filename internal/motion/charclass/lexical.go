package charclass

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dshills/hxmotion/internal/engine/buffer"
)

// Language describes the delimiters the lexical resolver tracks.
type Language struct {
	// Name is the file type identifier (e.g. "go").
	Name string

	// Extensions are file name extensions mapped to this language.
	Extensions []string

	// LineComment starts a comment running to end of line.
	LineComment string

	// BlockCommentStart and BlockCommentEnd delimit block comments.
	BlockCommentStart string
	BlockCommentEnd   string

	// Quotes lists the runes that open and close string literals.
	Quotes string

	// RawQuotes lists quotes whose strings may span lines and do not
	// process backslash escapes.
	RawQuotes string

	// WordChars are extra Word characters in code regions.
	WordChars string
}

// BuiltinLanguages returns the default language table.
func BuiltinLanguages() []Language {
	cStyle := func(name string, exts ...string) Language {
		return Language{
			Name:              name,
			Extensions:        exts,
			LineComment:       "//",
			BlockCommentStart: "/*",
			BlockCommentEnd:   "*/",
			Quotes:            `"'`,
		}
	}

	golang := cStyle("go", ".go")
	golang.Quotes = "\"'`"
	golang.RawQuotes = "`"

	js := cStyle("javascript", ".js", ".mjs", ".jsx")
	js.Quotes = "\"'`"
	js.RawQuotes = "`"

	ts := cStyle("typescript", ".ts", ".tsx")
	ts.Quotes = js.Quotes
	ts.RawQuotes = js.RawQuotes

	css := Language{
		Name:              "css",
		Extensions:        []string{".css", ".scss"},
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Quotes:            `"'`,
		WordChars:         "-",
	}

	return []Language{
		golang,
		cStyle("c", ".c", ".h"),
		cStyle("cpp", ".cc", ".cpp", ".hpp"),
		cStyle("rust", ".rs"),
		cStyle("java", ".java"),
		js,
		ts,
		css,
		{Name: "python", Extensions: []string{".py"}, LineComment: "#", Quotes: `"'`},
		{Name: "shell", Extensions: []string{".sh", ".bash", ".zsh"}, LineComment: "#", Quotes: `"'`, RawQuotes: "'"},
		{Name: "toml", Extensions: []string{".toml"}, LineComment: "#", Quotes: `"'`, RawQuotes: "'"},
		{Name: "lua", Extensions: []string{".lua"}, LineComment: "--", BlockCommentStart: "--[[", BlockCommentEnd: "]]", Quotes: `"'`},
		{Name: "lisp", Extensions: []string{".lisp", ".el", ".clj"}, LineComment: ";", Quotes: `"`, WordChars: "-?!*"},
	}
}

// FileTypeForPath returns the language name registered for the path's
// extension in langs, or "" when none matches.
func FileTypeForPath(path string, langs []Language) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	for _, lang := range langs {
		for _, e := range lang.Extensions {
			if e == ext {
				return lang.Name
			}
		}
	}
	return ""
}

// LexicalResolver resolves scopes by lexing the text before a position
// with a per-language delimiter table.
type LexicalResolver struct {
	languages map[string]Language
}

// NewLexicalResolver creates a resolver for langs. Later entries with the
// same name replace earlier ones.
func NewLexicalResolver(langs []Language) *LexicalResolver {
	r := &LexicalResolver{languages: make(map[string]Language, len(langs))}
	for _, lang := range langs {
		r.languages[lang.Name] = lang
	}
	return r
}

// Language returns the definition registered for name.
func (r *LexicalResolver) Language(name string) (Language, bool) {
	lang, ok := r.languages[name]
	return lang, ok
}

type lexState uint8

const (
	lexCode lexState = iota
	lexString
	lexLineComment
	lexBlockComment
)

// ScopeAt implements ScopeResolver. The character at offset belongs to the
// region the lexer is in after consuming everything before it, so an
// opening quote is code and a closing quote is string.
func (r *LexicalResolver) ScopeAt(src Source, offset buffer.ByteOffset) Scope {
	fileType := src.FileType()
	scope := Scope{Language: fileType, Region: RegionCode}

	lang, ok := r.languages[fileType]
	if !ok {
		return scope
	}

	scope.Region = lexRegion(lang, src.Slice(0, offset))
	return scope
}

func lexRegion(lang Language, text string) Region {
	state := lexCode
	var quote rune

	for i := 0; i < len(text); {
		rest := text[i:]
		r, size := utf8.DecodeRuneInString(rest)

		switch state {
		case lexCode:
			switch {
			case lang.BlockCommentStart != "" && strings.HasPrefix(rest, lang.BlockCommentStart):
				state = lexBlockComment
				size = len(lang.BlockCommentStart)
			case lang.LineComment != "" && strings.HasPrefix(rest, lang.LineComment):
				state = lexLineComment
				size = len(lang.LineComment)
			case strings.ContainsRune(lang.Quotes, r):
				state = lexString
				quote = r
			}

		case lexString:
			raw := strings.ContainsRune(lang.RawQuotes, quote)
			switch {
			case r == '\\' && !raw:
				// Skip the escaped rune as well.
				if i+size < len(text) {
					_, next := utf8.DecodeRuneInString(text[i+size:])
					size += next
				}
			case r == quote:
				state = lexCode
			case r == '\n' && !raw:
				state = lexCode
			}

		case lexLineComment:
			if r == '\n' {
				state = lexCode
			}

		case lexBlockComment:
			if strings.HasPrefix(rest, lang.BlockCommentEnd) {
				state = lexCode
				size = len(lang.BlockCommentEnd)
			}
		}

		i += size
	}

	switch state {
	case lexString:
		return RegionString
	case lexLineComment, lexBlockComment:
		return RegionComment
	}
	return RegionCode
}
