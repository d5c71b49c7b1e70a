// Package config loads hxmotion settings.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← HXMOTION_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← hxmotion.toml, with @include
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The merged tree is decoded into a typed Config. Decoding reports every
// invalid value at once as ValidationErrors joined with errors.Join.
//
// # Sub-packages
//
//   - loader: TOML and environment loading, deep merge
//   - watcher: change notification for live reload
//
// # Example
//
//	[motion]
//	selectBehavior = "helix"
//
//	[motion.scopes.string]
//	wordChars = "-"
//
//	[motion.languages.lisp]
//	wordChars = "-?!*"
//
//	[toast]
//	origin = "bottomRight"
//	timeout = "5s"
package config
