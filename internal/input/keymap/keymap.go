// Package keymap maps key names to actions per mode.
//
// Keys are single key names as produced by the terminal backend: printable
// characters ("w", "."), and named keys ("Esc", "Enter", "C-c").
package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrInvalidBinding is returned for bindings with empty keys or actions.
var ErrInvalidBinding = errors.New("keymap: invalid binding")

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the key name that triggers this binding.
	Keys string

	// Action is the command to execute, e.g. "motion.nextWordStart".
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// Keymap holds key bindings for a mode.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Mode is the mode this keymap applies to. Empty means all modes.
	Mode string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Priority determines precedence when multiple keymaps match.
	Priority int

	// Source indicates where this keymap was defined ("default", "user").
	Source string
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("%w: binding %d: empty keys", ErrInvalidBinding, i)
		}
		if b.Action == "" {
			return fmt.Errorf("%w: binding %d (%s): empty action", ErrInvalidBinding, i, b.Keys)
		}
	}
	return nil
}

// Registry holds keymaps and resolves key lookups.
type Registry struct {
	mu      sync.RWMutex
	keymaps []*Keymap
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register validates and adds a keymap, replacing any keymap with the same
// name.
func (r *Registry) Register(km *Keymap) error {
	if err := km.Validate(); err != nil {
		return fmt.Errorf("keymap %s: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(km.Name)
	r.keymaps = append(r.keymaps, km)
	sort.SliceStable(r.keymaps, func(i, j int) bool {
		return r.keymaps[i].Priority > r.keymaps[j].Priority
	})
	return nil
}

// Unregister removes the keymap with the given name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(name)
}

func (r *Registry) unregisterLocked(name string) {
	for i, km := range r.keymaps {
		if km.Name == name {
			r.keymaps = append(r.keymaps[:i], r.keymaps[i+1:]...)
			return
		}
	}
}

// Lookup finds the binding for keys in mode. Mode-specific keymaps win over
// global ones; within each group higher priority wins.
func (r *Registry) Lookup(mode, keys string) *Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if b := r.lookupLocked(keys, func(km *Keymap) bool { return km.Mode == mode }); b != nil {
		return b
	}
	return r.lookupLocked(keys, func(km *Keymap) bool { return km.Mode == "" })
}

func (r *Registry) lookupLocked(keys string, match func(*Keymap) bool) *Binding {
	for _, km := range r.keymaps {
		if !match(km) {
			continue
		}
		for i := range km.Bindings {
			if km.Bindings[i].Keys == keys {
				b := km.Bindings[i]
				return &b
			}
		}
	}
	return nil
}

// AllBindings returns the effective bindings for mode, sorted by keys.
func (r *Registry) AllBindings(mode string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []Binding
	collect := func(match func(*Keymap) bool) {
		for _, km := range r.keymaps {
			if !match(km) {
				continue
			}
			for _, b := range km.Bindings {
				if !seen[b.Keys] {
					seen[b.Keys] = true
					out = append(out, b)
				}
			}
		}
	}
	collect(func(km *Keymap) bool { return km.Mode == mode })
	collect(func(km *Keymap) bool { return km.Mode == "" })

	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}
