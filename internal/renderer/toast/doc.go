// Package toast implements transient, single-slot notifications.
//
// At most one toast is visible: showing a new one replaces the old. A
// toast expires once its timeout has elapsed; expiry is checked lazily
// whenever the current toast is read, so the manager needs no timer
// goroutine.
//
// Render draws the visible toast as a one-row box on any backend.Surface,
// a fixed number of rows above the bottom edge. With OriginBottom the
// box's right edge sits at half the surface width; with OriginBottomRight
// it sits two cells in from the right edge.
package toast
