// Package mode tracks the active selection mode.
//
// In normal mode a motion replaces the selection; in select mode it extends
// the selection from its anchor.
package mode

import (
	"fmt"
	"sync"
)

// Mode names.
const (
	Normal = "normal"
	Select = "select"
)

// Mode describes a registered mode.
type Mode struct {
	// Name is the unique identifier ("normal", "select").
	Name string

	// DisplayName is shown in the status line.
	DisplayName string

	// Extends reports whether motions extend the selection in this mode.
	Extends bool
}

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// Manager manages modes and transitions between them.
type Manager struct {
	mu        sync.RWMutex
	modes     map[string]Mode
	current   Mode
	callbacks []ChangeCallback
}

// NewManager creates a manager with normal and select modes registered,
// starting in normal mode.
func NewManager() *Manager {
	m := &Manager{modes: make(map[string]Mode)}
	m.Register(Mode{Name: Normal, DisplayName: "NOR"})
	m.Register(Mode{Name: Select, DisplayName: "SEL", Extends: true})
	m.current = m.modes[Normal]
	return m
}

// Register adds or replaces a mode.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name] = mode
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName returns the active mode's name.
func (m *Manager) CurrentName() string {
	return m.Current().Name
}

// IsMode reports whether the active mode is name.
func (m *Manager) IsMode(name string) bool {
	return m.CurrentName() == name
}

// Extends reports whether motions in the active mode extend selections.
func (m *Manager) Extends() bool {
	return m.Current().Extends
}

// Switch changes to the named mode.
func (m *Manager) Switch(name string) error {
	m.mu.Lock()
	next, ok := m.modes[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("unknown mode: %s", name)
	}
	prev := m.current
	m.current = next
	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.Unlock()

	if prev.Name == next.Name {
		return nil
	}
	for _, cb := range callbacks {
		cb(prev, next)
	}
	return nil
}

// Toggle switches between normal and select mode.
func (m *Manager) Toggle() error {
	if m.IsMode(Select) {
		return m.Switch(Normal)
	}
	return m.Switch(Select)
}

// OnChange registers a callback invoked after each mode change.
func (m *Manager) OnChange(cb ChangeCallback) {
	if cb == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}
