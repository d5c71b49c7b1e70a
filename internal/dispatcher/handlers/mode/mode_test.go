package mode_test

import (
	"testing"

	"github.com/dshills/hxmotion/internal/dispatcher"
	"github.com/dshills/hxmotion/internal/dispatcher/execctx"
	"github.com/dshills/hxmotion/internal/dispatcher/handler"
	"github.com/dshills/hxmotion/internal/dispatcher/handlers/mode"
	"github.com/dshills/hxmotion/internal/engine/cursor"
	"github.com/dshills/hxmotion/internal/input"
	inputmode "github.com/dshills/hxmotion/internal/input/mode"
)

func TestModeHandlerNamespace(t *testing.T) {
	h := mode.NewModeHandler()
	if h.Namespace() != "mode" {
		t.Errorf("expected namespace 'mode', got %q", h.Namespace())
	}
}

func TestModeHandlerCanHandle(t *testing.T) {
	h := mode.NewModeHandler()

	tests := []struct {
		action   string
		expected bool
	}{
		{mode.ActionNormal, true},
		{mode.ActionSelect, true},
		{mode.ActionToggleSelect, true},
		{"mode.insert", false},
		{"motion.nextWordStart", false},
	}

	for _, tc := range tests {
		if h.CanHandle(tc.action) != tc.expected {
			t.Errorf("CanHandle(%q) = %v, want %v", tc.action, h.CanHandle(tc.action), tc.expected)
		}
	}
}

func TestModeHandlerToggle(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	modes := inputmode.NewManager()
	cursors := cursor.NewCursorSet(cursor.NewSelection(0, 3))
	d.SetModeManager(modes)
	d.SetCursors(cursors)
	d.RegisterNamespace("mode", mode.NewModeHandler())

	d.Dispatch(input.Action{Name: mode.ActionToggleSelect})
	if !modes.IsMode(inputmode.Select) {
		t.Fatalf("expected select mode, got %q", modes.CurrentName())
	}
	if cursors.Primary() != cursor.NewSelection(0, 3) {
		t.Errorf("entering select mode changed the selection: %v", cursors.Primary())
	}

	d.Dispatch(input.Action{Name: mode.ActionToggleSelect})
	if !modes.IsMode(inputmode.Normal) {
		t.Fatalf("expected normal mode, got %q", modes.CurrentName())
	}
	if got := cursors.Primary(); got != cursor.NewCursorSelection(3) {
		t.Errorf("expected selection collapsed onto head, got %v", got)
	}
}

func TestModeHandlerSelectTwice(t *testing.T) {
	h := mode.NewModeHandler()
	modes := inputmode.NewManager()
	_ = modes.Switch(inputmode.Select)
	ctx := execctx.New().WithModeManager(modes)

	result := h.HandleAction(input.Action{Name: mode.ActionSelect}, ctx)
	if result.Status != handler.StatusNoOp {
		t.Errorf("expected StatusNoOp, got %v", result.Status)
	}
}

func TestModeHandlerNormalWithoutCursors(t *testing.T) {
	h := mode.NewModeHandler()

	result := h.HandleAction(input.Action{Name: mode.ActionNormal}, execctx.New())
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if result.ModeChange != inputmode.Normal {
		t.Errorf("expected mode change to normal, got %q", result.ModeChange)
	}
}
