package plugin

import "errors"

// Plugin host errors.
var (
	// ErrAlreadyLoaded is returned when loading a host twice.
	ErrAlreadyLoaded = errors.New("plugin: script is already loaded")

	// ErrNotLoaded is returned when activating a host that is not loaded.
	ErrNotLoaded = errors.New("plugin: script is not loaded")

	// ErrNoScript is returned when a host has no script path.
	ErrNoScript = errors.New("plugin: no script path")
)
