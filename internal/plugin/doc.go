// Package plugin runs user Lua scripts against the motion core.
//
// A Host owns one sandboxed Lua state (see package lua) with the ks API
// modules installed (see package api). Its lifecycle is
//
//	Unloaded -> Load -> Loaded -> Activate -> Active -> Close -> Closed
//
// Load runs the script file. Activate calls the script's optional
// setup(config) and activate() globals; Close calls deactivate() first
// when the script is active. Any failure moves the host to StateError and
// is kept in Error.
//
// A minimal script:
//
//	local ks = require("ks")
//
//	function activate()
//	    local head = ks.motion.next_word_start("hello world", 0)
//	    ks.ui.notify("next word at " .. head)
//	end
package plugin
