package config

import (
	"fmt"
	"sort"

	"github.com/dshills/hxmotion/internal/config/notify"
)

// Settings flattens c into dot-separated paths. Tables are rendered as
// strings so every value compares with ==.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		"logging.level":         c.Logging.Level,
		"motion.selectBehavior": c.Motion.SelectBehavior,
		"motion.span":           c.Motion.Span,
		"motion.scopes":         fmt.Sprint(c.Motion.ScopeWordChars),
		"motion.languages":      fmt.Sprint(c.Motion.Languages),
		"toast.origin":          c.Toast.Origin.String(),
		"toast.timeout":         c.Toast.Timeout,
		"toast.maxWidth":        c.Toast.MaxWidth,
		"toast.background":      c.Toast.Background,
		"toast.foreground":      c.Toast.Foreground,
	}
}

// Diff returns one change per setting that differs between old and new,
// sorted by path. A nil old reports every setting.
func Diff(old, new *Config) []notify.Change {
	var before map[string]any
	if old != nil {
		before = old.Settings()
	}
	after := new.Settings()

	paths := make([]string, 0, len(after))
	for p := range after {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var changes []notify.Change
	for _, p := range paths {
		prev, ok := before[p]
		if ok && prev == after[p] {
			continue
		}
		changes = append(changes, notify.Change{
			Path:     p,
			Type:     notify.ChangeSet,
			OldValue: prev,
			NewValue: after[p],
		})
	}
	return changes
}
