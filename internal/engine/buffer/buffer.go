package buffer

import (
	"fmt"
	"sync"
)

// Option configures a Buffer or Snapshot.
type Option func(*options)

type options struct {
	fileType string
	filePath string
}

// WithFileType sets the language identifier used for lexical scope lookups.
func WithFileType(fileType string) Option {
	return func(o *options) {
		o.fileType = fileType
	}
}

// WithFilePath records the path the text was loaded from.
func WithFilePath(path string) Option {
	return func(o *options) {
		o.filePath = path
	}
}

// Buffer is a thread-safe holder of the current text.
// Every modification publishes a new immutable Snapshot.
type Buffer struct {
	mu   sync.RWMutex
	snap *Snapshot
	opts options
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	return NewBufferFromString("", opts...)
}

// NewBufferFromString creates a buffer holding text.
func NewBufferFromString(text string, opts ...Option) *Buffer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Buffer{
		snap: newSnapshot(text, NewRevisionID(), o),
		opts: o,
	}
}

// Snapshot returns the current read-only view.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}

// Text returns the current text.
func (b *Buffer) Text() string {
	return b.Snapshot().Text()
}

// Len returns the current length in bytes.
func (b *Buffer) Len() ByteOffset {
	return b.Snapshot().Len()
}

// LineCount returns the current number of lines.
func (b *Buffer) LineCount() uint32 {
	return b.Snapshot().LineCount()
}

// FileType returns the buffer's language identifier.
func (b *Buffer) FileType() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.opts.fileType
}

// SetFileType changes the language identifier for subsequent snapshots.
func (b *Buffer) SetFileType(fileType string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opts.fileType = fileType
	b.snap = newSnapshot(b.snap.text, NewRevisionID(), b.opts)
}

// SetText replaces the entire content.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = newSnapshot(text, NewRevisionID(), b.opts)
}

// Insert inserts text at offset and returns the offset after the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.snap.Len() {
		return 0, fmt.Errorf("insert at %d: %w", offset, ErrOffsetOutOfRange)
	}
	if !b.snap.IsRuneBoundary(offset) {
		return 0, fmt.Errorf("insert at %d: %w", offset, ErrNotRuneBoundary)
	}
	cur := b.snap.text
	b.snap = newSnapshot(cur[:offset]+text+cur[offset:], NewRevisionID(), b.opts)
	return offset + ByteOffset(len(text)), nil
}

// Delete removes the bytes in [start, end).
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start > end {
		return fmt.Errorf("delete [%d, %d): %w", start, end, ErrInvalidRange)
	}
	if !b.snap.IsRuneBoundary(start) || !b.snap.IsRuneBoundary(end) {
		return fmt.Errorf("delete [%d, %d): %w", start, end, ErrNotRuneBoundary)
	}
	cur := b.snap.text
	b.snap = newSnapshot(cur[:start]+cur[end:], NewRevisionID(), b.opts)
	return nil
}
