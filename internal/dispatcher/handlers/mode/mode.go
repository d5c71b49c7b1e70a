package mode

import (
	"github.com/dshills/hxmotion/internal/dispatcher/execctx"
	"github.com/dshills/hxmotion/internal/dispatcher/handler"
	"github.com/dshills/hxmotion/internal/input"
	inputmode "github.com/dshills/hxmotion/internal/input/mode"
)

// Action names for mode operations.
const (
	ActionNormal       = "mode.normal"       // Esc - back to normal mode
	ActionSelect       = "mode.select"       // enter select mode
	ActionToggleSelect = "mode.toggleSelect" // v - toggle select mode
)

// ModeHandler handles mode switching operations.
type ModeHandler struct{}

// NewModeHandler creates a new mode handler.
func NewModeHandler() *ModeHandler {
	return &ModeHandler{}
}

// Namespace returns the mode namespace.
func (h *ModeHandler) Namespace() string {
	return "mode"
}

// CanHandle returns true if this handler can process the action.
func (h *ModeHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionNormal, ActionSelect, ActionToggleSelect:
		return true
	}
	return false
}

// HandleAction processes a mode action.
func (h *ModeHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionNormal:
		return h.switchToNormal(ctx)
	case ActionSelect:
		return h.switchToSelect(ctx)
	case ActionToggleSelect:
		if ctx.Mode() == inputmode.Select {
			return h.switchToNormal(ctx)
		}
		return h.switchToSelect(ctx)
	default:
		return handler.Errorf("unknown mode action: %s", action.Name)
	}
}

// switchToNormal leaves select mode. Selections collapse onto their heads.
func (h *ModeHandler) switchToNormal(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Cursors != nil {
		ctx.Cursors.CollapseAll()
	}
	return handler.Success().WithModeChange(inputmode.Normal).WithRedraw()
}

func (h *ModeHandler) switchToSelect(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Mode() == inputmode.Select {
		return handler.NoOp()
	}
	return handler.Success().WithModeChange(inputmode.Select).WithRedraw()
}
