package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/hxmotion/internal/renderer/core"
)

// Config holds toast presentation settings.
type Config struct {
	Origin   Origin
	Timeout  time.Duration
	MaxWidth int // text cells, excluding padding
	Theme    Theme
}

// DefaultConfig returns the default toast configuration.
func DefaultConfig() Config {
	return Config{
		Origin:   OriginBottom,
		Timeout:  3 * time.Second,
		MaxWidth: 60,
		Theme:    DefaultTheme(),
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source used by Show and Notify.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithOnChange registers a callback invoked after a toast is shown or
// dismissed.
func WithOnChange(fn func()) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// Manager owns the single visible toast.
type Manager struct {
	mu       sync.Mutex
	config   Config
	current  *Toast
	now      func() time.Time
	onChange func()
}

// NewManager creates a toast manager.
func NewManager(config Config, opts ...Option) *Manager {
	m := &Manager{config: config, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the current configuration.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// SetConfig replaces the configuration. The visible toast keeps its
// timeout.
func (m *Manager) SetConfig(config Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config = config
}

// Show displays message, replacing any visible toast.
func (m *Manager) Show(message string, level Level) Toast {
	m.mu.Lock()
	t := Toast{
		ID:      uuid.NewString(),
		Message: message,
		Level:   level,
		Created: m.now(),
		Timeout: m.config.Timeout,
	}
	m.current = &t
	m.mu.Unlock()

	m.changed()
	return t
}

// Notify shows message at the named level and returns the toast id.
func (m *Manager) Notify(message, level string) (string, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return "", err
	}
	return m.Show(message, lvl).ID, nil
}

// Dismiss hides the toast with id. An empty id dismisses whatever is
// visible. Returns false if nothing was dismissed.
func (m *Manager) Dismiss(id string) bool {
	m.mu.Lock()
	if m.current == nil || (id != "" && m.current.ID != id) {
		m.mu.Unlock()
		return false
	}
	m.current = nil
	m.mu.Unlock()

	m.changed()
	return true
}

// Current returns the visible toast at now. An expired toast is dropped.
func (m *Manager) Current(now time.Time) (Toast, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return Toast{}, false
	}
	if m.current.Expired(now) {
		m.current = nil
		return Toast{}, false
	}
	return *m.current, true
}

// NextExpiry returns when the visible toast expires, if it has a timeout.
func (m *Manager) NextExpiry() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.Timeout <= 0 {
		return time.Time{}, false
	}
	return m.current.Created.Add(m.current.Timeout), true
}

// Render draws the visible toast onto surface and returns the box it
// occupies. It returns false when nothing is visible or the surface is
// too small.
func (m *Manager) Render(surface Surface, now time.Time) (core.ScreenRect, bool) {
	t, ok := m.Current(now)
	if !ok {
		return core.ScreenRect{}, false
	}
	return Draw(surface, t, m.Config())
}

func (m *Manager) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}
