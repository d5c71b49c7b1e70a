package toast

import (
	"github.com/dshills/hxmotion/internal/dispatcher/execctx"
	"github.com/dshills/hxmotion/internal/dispatcher/handler"
	"github.com/dshills/hxmotion/internal/input"
)

// Action names for toast operations.
const (
	ActionShow    = "toast.show"
	ActionDismiss = "toast.dismiss"
)

// Handler handles toast actions.
type Handler struct{}

// NewHandler creates a new toast handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the toast namespace.
func (h *Handler) Namespace() string {
	return "toast"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionShow, ActionDismiss:
		return true
	}
	return false
}

// HandleAction processes a toast action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Notifier == nil {
		return handler.Error(execctx.ErrMissingNotifier)
	}

	switch action.Name {
	case ActionShow:
		return h.show(action, ctx)
	case ActionDismiss:
		return h.dismiss(action, ctx)
	default:
		return handler.Errorf("unknown toast action: %s", action.Name)
	}
}

func (h *Handler) show(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	level := action.Args.GetString("level")
	if level == "" {
		level = "info"
	}
	id, err := ctx.Notifier.Notify(action.Args.Text, level)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedraw().WithData("id", id)
}

func (h *Handler) dismiss(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !ctx.Notifier.Dismiss(action.Args.GetString("id")) {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw()
}
