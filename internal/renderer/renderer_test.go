package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/engine/cursor"
	"github.com/dshills/hxmotion/internal/renderer/backend"
	"github.com/dshills/hxmotion/internal/renderer/core"
	"github.com/dshills/hxmotion/internal/renderer/toast"
)

func newTestRenderer(t *testing.T, width, height int, opts Options) *Renderer {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := backend.NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(term.Shutdown)
	return New(term, opts)
}

func plainOptions() Options {
	opts := DefaultOptions()
	opts.ShowLineNumbers = false
	return opts
}

func TestRenderSelection(t *testing.T) {
	r := newTestRenderer(t, 20, 5, plainOptions())
	snap := buffer.NewSnapshot("one two\nthree")

	r.Render(Frame{
		Snapshot:   snap,
		Selections: []cursor.Selection{cursor.NewSelection(0, 3)},
		Mode:       "SEL",
	})

	sb := r.Screen()
	if got := strings.TrimRight(sb.Row(0), " "); got != "one two" {
		t.Errorf("row 0 = %q, want %q", got, "one two")
	}
	if got := strings.TrimRight(sb.Row(1), " "); got != "three" {
		t.Errorf("row 1 = %q, want %q", got, "three")
	}

	for x, want := range []bool{true, true, true, true, false} {
		got := sb.GetCell(x, 0).Style.Attributes.Has(core.AttrReverse)
		if got != want {
			t.Errorf("cell %d reversed = %v, want %v", x, got, want)
		}
	}

	if pos := r.CursorPos(); pos != (core.ScreenPos{Row: 0, Col: 3}) {
		t.Errorf("cursor = %+v, want row 0 col 3", pos)
	}
	if status := sb.Row(4); !strings.HasPrefix(status, " SEL  1:4") {
		t.Errorf("status = %q", status)
	}
}

func TestRenderLineNumbers(t *testing.T) {
	r := newTestRenderer(t, 20, 4, DefaultOptions())
	r.Render(Frame{
		Snapshot:   buffer.NewSnapshot("ab\ncd"),
		Selections: []cursor.Selection{cursor.NewCursorSelection(4)},
		Mode:       "NOR",
	})

	sb := r.Screen()
	if got := strings.TrimRight(sb.Row(0), " "); got != "1 ab" {
		t.Errorf("row 0 = %q", got)
	}
	if got := strings.TrimRight(sb.Row(1), " "); got != "2 cd" {
		t.Errorf("row 1 = %q", got)
	}
	if pos := r.CursorPos(); pos != (core.ScreenPos{Row: 1, Col: 3}) {
		t.Errorf("cursor = %+v, want row 1 col 3", pos)
	}
}

func TestRenderMultipleSelectionsStatus(t *testing.T) {
	r := newTestRenderer(t, 30, 3, plainOptions())
	r.Render(Frame{
		Snapshot: buffer.NewSnapshot("ab cd"),
		Selections: []cursor.Selection{
			cursor.NewCursorSelection(0),
			cursor.NewCursorSelection(3),
		},
		Mode:   "NOR",
		Status: "w",
	})

	if got := strings.TrimRight(r.Screen().Row(2), " "); got != " NOR  1:1  2 sel  w" {
		t.Errorf("status = %q", got)
	}
}

func TestRenderScrollsToHead(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "line")
	}
	snap := buffer.NewSnapshot(strings.Join(lines, "\n"))
	head := snap.LineStartOffset(10)

	r := newTestRenderer(t, 10, 6, plainOptions())
	r.Render(Frame{
		Snapshot:   snap,
		Selections: []cursor.Selection{cursor.NewCursorSelection(head)},
	})

	if top := r.TopLine(); top != 8 {
		t.Errorf("TopLine = %d, want 8", top)
	}
	if pos := r.CursorPos(); pos.Row != 2 {
		t.Errorf("cursor row = %d, want 2", pos.Row)
	}

	r.Render(Frame{
		Snapshot:   snap,
		Selections: []cursor.Selection{cursor.NewCursorSelection(0)},
	})
	if top := r.TopLine(); top != 0 {
		t.Errorf("TopLine after jump back = %d, want 0", top)
	}
}

func TestRenderWideAndTabs(t *testing.T) {
	r := newTestRenderer(t, 20, 3, plainOptions())
	r.Render(Frame{
		Snapshot:   buffer.NewSnapshot("日本\tx"),
		Selections: []cursor.Selection{cursor.NewCursorSelection(3)},
	})

	if pos := r.CursorPos(); pos.Col != 2 {
		t.Errorf("cursor col = %d, want 2", pos.Col)
	}
	if got := r.Screen().GetCell(8, 0).Rune; got != 'x' {
		t.Errorf("cell 8 = %q, want 'x' after tab stop", got)
	}
}

func TestRenderToastOverlay(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	toasts := toast.NewManager(toast.DefaultConfig(), toast.WithClock(func() time.Time { return now }))
	toasts.Show("hi", toast.LevelInfo)

	r := newTestRenderer(t, 20, 6, plainOptions())
	r.Render(Frame{
		Snapshot:   buffer.NewSnapshot("text"),
		Selections: []cursor.Selection{cursor.NewCursorSelection(0)},
		Toasts:     toasts,
		Now:        now,
	})

	if row := r.Screen().Row(3); !strings.Contains(row, " hi ") {
		t.Errorf("toast row = %q", row)
	}
}

func TestRedrawFlag(t *testing.T) {
	r := newTestRenderer(t, 10, 3, plainOptions())

	if !r.NeedsRedraw() {
		t.Error("new renderer should need a redraw")
	}
	if r.NeedsRedraw() {
		t.Error("NeedsRedraw should clear the flag")
	}
	r.Redraw()
	if !r.NeedsRedraw() {
		t.Error("Redraw should set the flag")
	}
}
