// Package cursor provides the selection session state that word motions
// are applied to.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (the position a motion moves)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text.
//
// CursorSet manages multiple selections that are kept sorted by position
// and merged when they overlap. Motions fan out across every selection via
// MapInPlace; each head is moved independently.
//
// Selection is an immutable value type and safe for concurrent use.
// CursorSet is not thread-safe and should be protected by external
// synchronization if accessed concurrently.
package cursor
