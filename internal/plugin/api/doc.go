// Package api provides the Lua API modules exposed to hxmotion scripts.
//
// Scripts reach editor functionality through the "ks" module, which
// aggregates the registered submodules:
//
//   - ks.motion: word motions over arbitrary text and character classes
//   - ks.ui: toast notifications
//
// Each module implements Module and publishes itself as a _ks_<name>
// global during Register. Registry.InjectAll registers every module, then
// moves the globals into the "ks" table and preloads it so that
//
//	local ks = require("ks")
//	local head, found = ks.motion.next_word_start("foo bar", 0)
//
// works inside the sandbox. Offsets are 0-based byte offsets into the
// text, matching the Go side.
package api
