// Package buffer provides the text storage the motion core reads from.
//
// A Buffer owns the current text and hands out immutable Snapshots. A
// Snapshot is what word motions scan: it never changes after creation, so
// any number of scans (one per cursor) may read it concurrently without
// synchronization.
//
// Position Types:
//
//   - ByteOffset: Raw byte position in the text. Scans advance and retreat
//     by one UTF-8 encoded rune at a time.
//   - Point: Line and column position (0-indexed, column in bytes). This is
//     the (row, column) view of a ByteOffset.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("foo-bar baz", buffer.WithFileType("go"))
//	snap := buf.Snapshot()
//	r, size := snap.RuneAt(3) // '-', 1
//	p := snap.OffsetToPoint(8) // (0:8)
package buffer
