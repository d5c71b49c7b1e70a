// Package charclass classifies characters for word motions.
//
// Every rune falls into one of three classes: Whitespace, Punctuation or
// Word. Which runes count as Word may depend on the lexical scope at the
// cursor, for example '-' inside CSS code. Scopes are supplied by a
// ScopeResolver; LexicalResolver is a lightweight implementation driven by
// a per-language delimiter table.
package charclass
