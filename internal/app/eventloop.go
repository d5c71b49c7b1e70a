package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/hxmotion/internal/input"
	"github.com/dshills/hxmotion/internal/renderer"
	"github.com/dshills/hxmotion/internal/renderer/backend"
	"github.com/dshills/hxmotion/internal/renderer/toast"
)

// Run shows the document on b and handles key input until the user quits
// or ctx is cancelled. The backend is initialized and shut down by Run.
func (app *Application) Run(ctx context.Context, b backend.Backend) error {
	if b == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.backend = b
	app.renderer = renderer.New(b, renderer.DefaultOptions())
	app.mu.Unlock()
	defer func() {
		app.mu.Lock()
		app.backend, app.renderer = nil, nil
		app.mu.Unlock()
	}()

	done := make(chan struct{})
	defer close(done)
	events := app.pollEvents(b, done)

	app.logger.Debug("event loop started")
	app.draw()

	for {
		var (
			timer  *time.Timer
			expire <-chan time.Time
		)
		if at, ok := app.toasts.NextExpiry(); ok {
			timer = time.NewTimer(max(at.Sub(app.opts.Clock()), 0))
			expire = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					app.logger.Debug("quit")
					return nil
				}
				return err
			}

		case <-expire:
			app.Redraw()

		case <-app.wake:
		}
		if timer != nil {
			timer.Stop()
		}

		if app.renderer.NeedsRedraw() {
			app.draw()
		}
	}
}

// pollEvents forwards backend events until the backend shuts down or done
// is closed.
func (app *Application) pollEvents(b backend.Backend, done <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := b.PollEvent()
			if ev.Type == backend.EventNone {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// draw renders the current state.
func (app *Application) draw() {
	app.renderer.Render(renderer.Frame{
		Snapshot:   app.doc.Snapshot(),
		Selections: app.doc.Cursors.All(),
		Mode:       app.modeManager.Current().DisplayName,
		Status:     app.Status(),
		Toasts:     app.toasts,
		Now:        app.opts.Clock(),
	})
}

// handleEvent processes one backend event. It returns ErrQuit when the
// application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.renderer.Resize(ev.Width, ev.Height)
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventInterrupt:
		app.Redraw()
	}
	return nil
}

// handleKey turns a key press into a count digit or a bound action.
func (app *Application) handleKey(ev backend.Event) error {
	key := keyName(ev)
	if key == "" {
		return nil
	}

	if ev.Key == backend.KeyRune && ev.Rune >= '0' && ev.Rune <= '9' {
		if ev.Rune != '0' || app.inputCtx.HasPendingCount() {
			app.inputCtx.AccumulateCount(int(ev.Rune - '0'))
			app.setStatus(fmt.Sprintf("%d", app.inputCtx.PendingCount))
			app.Redraw()
			return nil
		}
	}

	binding := app.keymaps.Lookup(app.modeManager.CurrentName(), key)
	if binding == nil || !app.dispatcher.CanDispatch(binding.Action) {
		app.inputCtx.ClearPending()
		app.setStatus(key + " is not bound")
		app.Redraw()
		return nil
	}

	result := app.dispatcher.DispatchWithContext(input.Action{
		Name:   binding.Action,
		Source: input.SourceKeyboard,
	}, app.inputCtx)
	app.inputCtx.ClearPending()

	if result.GetDataBool("quit") {
		return ErrQuit
	}

	switch {
	case result.IsError():
		msg := result.Message
		if result.Error != nil {
			msg = result.Error.Error()
		}
		app.logger.Warn("%s: %s", binding.Action, msg)
		app.toasts.Show(msg, toast.LevelError)
		app.setStatus("")
	default:
		if _, ok := result.GetData("motion"); ok {
			if l, err := app.landingFrom(key, result); err == nil {
				app.setStatus(l.String())
			}
		} else {
			app.setStatus(result.Message)
		}
	}
	app.Redraw()
	return nil
}

// keyName returns the keymap name for a key event, or "" for keys the
// viewer ignores.
func keyName(ev backend.Event) string {
	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModCtrl) {
			return "C-" + string(ev.Rune)
		}
		return string(ev.Rune)
	case backend.KeyEscape:
		return "Esc"
	case backend.KeyEnter:
		return "Enter"
	case backend.KeyCtrlC:
		return "C-c"
	}
	return ""
}
