package plugin

// State represents the lifecycle state of a script.
type State int

// Script states.
const (
	// StateUnloaded - script is not loaded.
	StateUnloaded State = iota

	// StateLoaded - script has run but setup/activate have not.
	StateLoaded

	// StateActive - activate has returned.
	StateActive

	// StateError - the script failed to load or activate.
	StateError

	// StateClosed - the Lua state has been released.
	StateClosed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateActive:
		return "active"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// IsUsable returns true if the script can be called (loaded or active).
func (s State) IsUsable() bool {
	return s == StateLoaded || s == StateActive
}
