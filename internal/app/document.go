package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/engine/cursor"
	"github.com/dshills/hxmotion/internal/motion/charclass"
)

// Document is the text being navigated together with its selections.
type Document struct {
	// Path is the file path (empty for scratch text).
	Path string

	// Name is the display name (file name or "[scratch]").
	Name string

	// FileType is the language used for lexical scopes.
	FileType string

	Buffer  *buffer.Buffer
	Cursors *cursor.CursorSet
}

// NewDocument creates a document holding text. The file type is derived
// from path using langs.
func NewDocument(path, text string, langs []charclass.Language) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "[scratch]"
	}
	fileType := charclass.FileTypeForPath(path, langs)

	return &Document{
		Path:     path,
		Name:     name,
		FileType: fileType,
		Buffer: buffer.NewBufferFromString(text,
			buffer.WithFileType(fileType),
			buffer.WithFilePath(path),
		),
		Cursors: cursor.NewCursorSetAt(0),
	}
}

// OpenDocument reads the file at path.
func OpenDocument(path string, langs []charclass.Language) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return NewDocument(path, string(data), langs), nil
}

// SetFileType overrides the detected file type.
func (d *Document) SetFileType(fileType string) {
	d.FileType = fileType
	d.Buffer.SetFileType(fileType)
}

// Snapshot returns the current text snapshot.
func (d *Document) Snapshot() *buffer.Snapshot {
	return d.Buffer.Snapshot()
}

// Head returns the primary cursor head.
func (d *Document) Head() buffer.ByteOffset {
	return d.Cursors.Primary().Head
}

// HeadPoint returns the primary cursor head as a line/column point.
func (d *Document) HeadPoint() buffer.Point {
	return d.Snapshot().OffsetToPoint(d.Head())
}

// MoveTo collapses all selections to a single cursor at offset, clamped
// to the text.
func (d *Document) MoveTo(offset buffer.ByteOffset) {
	d.Cursors.SetAll([]cursor.Selection{cursor.NewCursorSelection(offset)})
	d.Cursors.Clamp(d.Buffer.Len())
}
