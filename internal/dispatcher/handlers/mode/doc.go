// Package mode provides handlers for selection mode switching.
//
// Actions:
//   - mode.normal (Esc): Switch to normal mode and collapse selections
//   - mode.select: Switch to select mode
//   - mode.toggleSelect (v): Toggle between normal and select mode
//
// In select mode word motions extend selections from their anchors. The
// handler reports the new mode through Result.ModeChange; the dispatcher
// applies it.
package mode
