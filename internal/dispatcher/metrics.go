package dispatcher

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dshills/hxmotion/internal/dispatcher/handler"
)

// ActionStats holds dispatch counters for one action, or for all actions
// when Name is empty.
type ActionStats struct {
	Name    string
	Count   uint64
	Errors  uint64
	NoOps   uint64
	Elapsed time.Duration
	Slowest time.Duration
}

func (s *ActionStats) add(elapsed time.Duration, status handler.ResultStatus) {
	s.Count++
	s.Elapsed += elapsed
	s.Slowest = max(s.Slowest, elapsed)
	switch status {
	case handler.StatusError:
		s.Errors++
	case handler.StatusNoOp:
		s.NoOps++
	}
}

// Average returns the mean dispatch time.
func (s ActionStats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Count)
}

// Metrics counts dispatches. It is safe for concurrent use.
type Metrics struct {
	mu      sync.Mutex
	actions map[string]*ActionStats
	total   ActionStats
	panics  uint64
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionStats)}
}

// RecordDispatch counts one dispatch of action.
func (m *Metrics) RecordDispatch(action string, elapsed time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.actions[action]
	if s == nil {
		s = &ActionStats{Name: action}
		m.actions[action] = s
	}
	s.add(elapsed, status)
	m.total.add(elapsed, status)
}

// RecordPanic counts a recovered handler panic. The dispatch is counted
// separately as an error.
func (m *Metrics) RecordPanic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

// Summary is a copy of the counters at one point in time.
type Summary struct {
	Total  ActionStats
	Panics uint64

	// Top lists the most dispatched actions, busiest first, ties by name.
	Top []ActionStats
}

// Summary copies the counters, keeping at most top actions. A negative top
// keeps them all.
func (m *Metrics) Summary(top int) Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions := make([]ActionStats, 0, len(m.actions))
	for _, s := range m.actions {
		actions = append(actions, *s)
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Count != actions[j].Count {
			return actions[i].Count > actions[j].Count
		}
		return actions[i].Name < actions[j].Name
	})
	if top >= 0 && top < len(actions) {
		actions = actions[:top]
	}
	return Summary{Total: m.total, Panics: m.panics, Top: actions}
}

// Action returns the counters for one action.
func (s Summary) Action(name string) (ActionStats, bool) {
	for _, a := range s.Top {
		if a.Name == name {
			return a, true
		}
	}
	return ActionStats{}, false
}

// String formats the summary as a single log line.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "dispatches=%d errors=%d panics=%d avg=%s",
		s.Total.Count, s.Total.Errors, s.Panics, s.Total.Average())
	if len(s.Top) > 0 {
		sb.WriteString(" top=")
		for i, a := range s.Top {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%s:%d", a.Name, a.Count)
		}
	}
	return sb.String()
}
