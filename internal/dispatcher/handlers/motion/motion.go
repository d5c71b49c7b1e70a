package motion

import (
	"errors"
	"sync"

	"github.com/dshills/hxmotion/internal/dispatcher/execctx"
	"github.com/dshills/hxmotion/internal/dispatcher/handler"
	"github.com/dshills/hxmotion/internal/engine/cursor"
	"github.com/dshills/hxmotion/internal/input"
	"github.com/dshills/hxmotion/internal/motion"
)

// Action names for word motions.
const (
	ActionNextWordStart     = "motion.nextWordStart"
	ActionPrevWordStart     = "motion.prevWordStart"
	ActionNextWordEnd       = "motion.nextWordEnd"
	ActionNextLongWordStart = "motion.nextLongWordStart"
	ActionPrevLongWordStart = "motion.prevLongWordStart"
	ActionNextLongWordEnd   = "motion.nextLongWordEnd"
	ActionRepeatLast        = "motion.repeatLast"
)

// ErrNoLastMotion is returned by repeatLast before any motion ran.
var ErrNoLastMotion = errors.New("motion: no motion to repeat")

var actionKinds = map[string]motion.Kind{
	ActionNextWordStart:     motion.NextWordStart,
	ActionPrevWordStart:     motion.PrevWordStart,
	ActionNextWordEnd:       motion.NextWordEnd,
	ActionNextLongWordStart: motion.NextLongWordStart,
	ActionPrevLongWordStart: motion.PrevLongWordStart,
	ActionNextLongWordEnd:   motion.NextLongWordEnd,
}

// ActionFor returns the action name that runs kind.
func ActionFor(kind motion.Kind) string {
	for name, k := range actionKinds {
		if k == kind {
			return name
		}
	}
	return ""
}

// Behavior controls how a motion updates a selection outside of a mode
// that extends selections.
type Behavior uint8

const (
	// BehaviorReanchor selects the text traversed by the motion.
	BehaviorReanchor Behavior = iota
	// BehaviorMove collapses the selection onto the new head.
	BehaviorMove
)

// String returns the behavior name.
func (b Behavior) String() string {
	switch b {
	case BehaviorReanchor:
		return "reanchor"
	case BehaviorMove:
		return "move"
	default:
		return "unknown"
	}
}

// ParseBehavior parses "reanchor" (alias "helix") or "move".
func ParseBehavior(s string) (Behavior, bool) {
	switch s {
	case "reanchor", "helix", "":
		return BehaviorReanchor, true
	case "move":
		return BehaviorMove, true
	}
	return BehaviorReanchor, false
}

// Handler handles word motion actions.
type Handler struct {
	mu       sync.Mutex
	finder   *motion.Finder
	behavior Behavior
	last     motion.Kind
	hasLast  bool
}

// NewHandler creates a motion handler. A nil finder uses the default
// classifier with no scope resolver.
func NewHandler(finder *motion.Finder, behavior Behavior) *Handler {
	if finder == nil {
		finder = motion.NewFinder(nil)
	}
	return &Handler{finder: finder, behavior: behavior}
}

// Namespace returns the motion namespace.
func (h *Handler) Namespace() string {
	return "motion"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	if actionName == ActionRepeatLast {
		return true
	}
	_, ok := actionKinds[actionName]
	return ok
}

// SetFinder replaces the finder used by subsequent motions.
func (h *Handler) SetFinder(finder *motion.Finder) {
	if finder == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finder = finder
}

// SetBehavior changes how motions update selections outside select mode.
func (h *Handler) SetBehavior(b Behavior) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.behavior = b
}

// LastKind returns the last motion run, if any.
func (h *Handler) LastKind() (motion.Kind, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasLast
}

// HandleAction processes a motion action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForMotion(); err != nil {
		return handler.Error(err)
	}

	var kind motion.Kind
	if action.Name == ActionRepeatLast {
		k, ok := h.LastKind()
		if !ok {
			return handler.NoOpWithMessage(ErrNoLastMotion.Error())
		}
		kind = k
	} else {
		k, ok := actionKinds[action.Name]
		if !ok {
			return handler.Errorf("unknown motion action: %s", action.Name)
		}
		kind = k
		h.mu.Lock()
		h.last, h.hasLast = kind, true
		h.mu.Unlock()
	}

	return h.apply(kind, ctx)
}

func (h *Handler) apply(kind motion.Kind, ctx *execctx.ExecutionContext) handler.Result {
	h.mu.Lock()
	finder, behavior := h.finder, h.behavior
	h.mu.Unlock()

	snap := ctx.Engine.Snapshot()
	count := ctx.GetCount()
	extend := ctx.ExtendsSelection()

	ctx.Cursors.Clamp(snap.Len())
	primary := ctx.Cursors.Primary()

	moved := false
	found := false
	head := primary.Head

	ctx.Cursors.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		newHead, res := finder.Move(kind, snap, sel.Head, count)
		if sel == primary {
			head = newHead
			found = res.Found
		}
		if newHead != sel.Head {
			moved = true
		}

		switch {
		case extend:
			return sel.Extend(newHead)
		case behavior == BehaviorReanchor:
			return sel.Reanchor(newHead)
		default:
			return sel.MoveTo(newHead)
		}
	})

	var result handler.Result
	if moved {
		result = handler.Success().WithRedraw()
	} else {
		result = handler.NoOp()
	}
	return result.
		WithData("motion", kind.String()).
		WithData("head", int(head)).
		WithData("found", found)
}
