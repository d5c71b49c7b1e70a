// Package renderer draws the motion viewer: buffer text with selections, a
// status line, and the toast overlay.
//
// Frames are composed into a backend.ScreenBuffer and flushed to the
// backend, so only changed cells reach the terminal.
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.Render(renderer.Frame{Snapshot: snap, Selections: sels, Mode: "NOR"})
package renderer
