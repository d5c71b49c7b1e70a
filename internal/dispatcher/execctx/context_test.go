package execctx_test

import (
	"errors"
	"testing"

	"github.com/dshills/hxmotion/internal/dispatcher/execctx"
	"github.com/dshills/hxmotion/internal/engine/buffer"
	"github.com/dshills/hxmotion/internal/engine/cursor"
	"github.com/dshills/hxmotion/internal/input"
	"github.com/dshills/hxmotion/internal/input/mode"
)

func TestNew(t *testing.T) {
	ctx := execctx.New()

	if ctx.Count != 1 {
		t.Errorf("expected default Count 1, got %d", ctx.Count)
	}
}

func TestNewWithInputContext(t *testing.T) {
	inputCtx := &input.Context{
		Mode:         "select",
		PendingCount: 5,
		FilePath:     "/path/to/file.go",
		FileType:     "go",
		HasSelection: true,
	}

	ctx := execctx.NewWithInputContext(inputCtx)

	if ctx.Count != 5 {
		t.Errorf("expected Count 5 from input context, got %d", ctx.Count)
	}
	if ctx.FilePath != "/path/to/file.go" {
		t.Errorf("expected FilePath '/path/to/file.go', got %q", ctx.FilePath)
	}
	if ctx.FileType != "go" {
		t.Errorf("expected FileType 'go', got %q", ctx.FileType)
	}
	if ctx.Mode() != "select" {
		t.Errorf("expected mode from input context, got %q", ctx.Mode())
	}
	if !ctx.HasSelection() {
		t.Error("expected HasSelection from input context")
	}
}

func TestNewWithNilInputContext(t *testing.T) {
	ctx := execctx.NewWithInputContext(nil)

	if ctx.Count != 1 {
		t.Errorf("expected default Count 1, got %d", ctx.Count)
	}
}

func TestWithCount(t *testing.T) {
	if got := execctx.New().WithCount(10).Count; got != 10 {
		t.Errorf("expected Count 10, got %d", got)
	}
	if got := execctx.New().WithCount(0).Count; got != 1 {
		t.Errorf("expected Count to remain 1 for zero input, got %d", got)
	}

	ctx := execctx.New()
	ctx.Count = -3
	if ctx.GetCount() != 1 {
		t.Errorf("GetCount() = %d for negative count, want 1", ctx.GetCount())
	}
}

func TestModeManagerTakesPrecedence(t *testing.T) {
	mm := mode.NewManager()
	_ = mm.Switch(mode.Select)

	ctx := execctx.NewWithInputContext(&input.Context{Mode: "normal"}).WithModeManager(mm)
	if ctx.Mode() != mode.Select {
		t.Errorf("Mode() = %q, want select", ctx.Mode())
	}
	if !ctx.ExtendsSelection() {
		t.Error("select mode should extend")
	}

	if execctx.New().ExtendsSelection() {
		t.Error("context without mode manager should not extend")
	}
}

func TestHasSelectionFromCursors(t *testing.T) {
	cs := cursor.NewCursorSet(cursor.NewSelection(0, 3))
	ctx := execctx.New().WithCursors(cs)
	if !ctx.HasSelection() {
		t.Error("expected selection")
	}
}

func TestValidate(t *testing.T) {
	ctx := execctx.New()
	if err := ctx.Validate(); !errors.Is(err, execctx.ErrMissingEngine) {
		t.Errorf("Validate() = %v, want ErrMissingEngine", err)
	}

	ctx.WithEngine(buffer.NewBufferFromString("abc"))
	if err := ctx.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := ctx.ValidateForMotion(); !errors.Is(err, execctx.ErrMissingCursors) {
		t.Errorf("ValidateForMotion() = %v, want ErrMissingCursors", err)
	}

	ctx.WithCursors(cursor.NewCursorSetAt(0))
	if err := ctx.ValidateForMotion(); err != nil {
		t.Errorf("ValidateForMotion() = %v", err)
	}
}
