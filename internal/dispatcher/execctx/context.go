// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/engine/cursor"
	"github.com/dshills/hxmotion/internal/input"
)

// EngineInterface abstracts the text engine for handlers.
type EngineInterface interface {
	// Snapshot returns an immutable view of the current text.
	Snapshot() *buffer.Snapshot

	Text() string
	Len() buffer.ByteOffset
	LineCount() uint32
	FileType() string
}

// CursorManagerInterface abstracts cursor management for handlers.
type CursorManagerInterface interface {
	Primary() cursor.Selection
	All() []cursor.Selection
	Count() int
	IsMulti() bool

	HasSelection() bool

	SetAll(sels []cursor.Selection)
	MapInPlace(f func(sel cursor.Selection) cursor.Selection)
	CollapseAll()
	Clamp(maxOffset cursor.ByteOffset)
}

// ModeManagerInterface abstracts mode management for handlers.
type ModeManagerInterface interface {
	CurrentName() string
	Switch(name string) error

	// Extends reports whether motions extend selections in the current mode.
	Extends() bool
}

// RendererInterface abstracts rendering for handlers.
type RendererInterface interface {
	Redraw()
}

// NotifierInterface shows transient notifications.
type NotifierInterface interface {
	// Notify shows message at level ("info", "warn", "error") and returns
	// the notification id.
	Notify(message, level string) (string, error)

	// Dismiss hides the notification with id. An empty id dismisses the
	// visible notification. Returns false if nothing was dismissed.
	Dismiss(id string) bool
}

// ExecutionContext provides context for action execution.
type ExecutionContext struct {
	// Engine provides access to the text buffer.
	Engine EngineInterface

	// Cursors provides access to cursor/selection state.
	Cursors CursorManagerInterface

	// ModeManager provides mode state.
	ModeManager ModeManagerInterface

	// Renderer provides view operations.
	Renderer RendererInterface

	// Notifier shows toasts.
	Notifier NotifierInterface

	// Input provides the input context (mode, pending count).
	Input *input.Context

	// Buffer metadata
	FilePath string
	FileType string

	Count int // Repeat count (1 if not specified)
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{Count: 1}
}

// NewWithInputContext creates a new execution context from an input context.
func NewWithInputContext(inputCtx *input.Context) *ExecutionContext {
	ctx := New()
	ctx.Input = inputCtx

	if inputCtx != nil {
		if inputCtx.PendingCount > 0 {
			ctx.Count = inputCtx.PendingCount
		}
		ctx.FilePath = inputCtx.FilePath
		ctx.FileType = inputCtx.FileType
	}

	return ctx
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithCursors returns the context with cursors set.
func (ctx *ExecutionContext) WithCursors(cursors CursorManagerInterface) *ExecutionContext {
	ctx.Cursors = cursors
	return ctx
}

// WithModeManager returns the context with mode manager set.
func (ctx *ExecutionContext) WithModeManager(mm ModeManagerInterface) *ExecutionContext {
	ctx.ModeManager = mm
	return ctx
}

// WithRenderer returns the context with renderer set.
func (ctx *ExecutionContext) WithRenderer(renderer RendererInterface) *ExecutionContext {
	ctx.Renderer = renderer
	return ctx
}

// WithNotifier returns the context with notifier set.
func (ctx *ExecutionContext) WithNotifier(n NotifierInterface) *ExecutionContext {
	ctx.Notifier = n
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Mode returns the current mode name.
func (ctx *ExecutionContext) Mode() string {
	if ctx.ModeManager != nil {
		return ctx.ModeManager.CurrentName()
	}
	if ctx.Input != nil {
		return ctx.Input.Mode
	}
	return ""
}

// ExtendsSelection reports whether motions should extend selections.
func (ctx *ExecutionContext) ExtendsSelection() bool {
	if ctx.ModeManager != nil {
		return ctx.ModeManager.Extends()
	}
	return false
}

// HasSelection returns true if there is an active selection.
func (ctx *ExecutionContext) HasSelection() bool {
	if ctx.Cursors != nil {
		return ctx.Cursors.HasSelection()
	}
	if ctx.Input != nil {
		return ctx.Input.HasSelection
	}
	return false
}

// Validate checks that the context has an engine.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForMotion checks that the context can run cursor motions.
func (ctx *ExecutionContext) ValidateForMotion() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Cursors == nil {
		return ErrMissingCursors
	}
	return nil
}
