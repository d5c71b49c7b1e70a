package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/hxmotion/internal/config"
	"github.com/dshills/hxmotion/internal/config/notify"
	"github.com/dshills/hxmotion/internal/config/watcher"
	"github.com/dshills/hxmotion/internal/dispatcher"
	"github.com/dshills/hxmotion/internal/dispatcher/execctx"
	"github.com/dshills/hxmotion/internal/dispatcher/handler"
	modehandler "github.com/dshills/hxmotion/internal/dispatcher/handlers/mode"
	motionhandler "github.com/dshills/hxmotion/internal/dispatcher/handlers/motion"
	toasthandler "github.com/dshills/hxmotion/internal/dispatcher/handlers/toast"
	"github.com/dshills/hxmotion/internal/input"
	"github.com/dshills/hxmotion/internal/input/keymap"
	"github.com/dshills/hxmotion/internal/input/mode"
	"github.com/dshills/hxmotion/internal/motion"
	"github.com/dshills/hxmotion/internal/plugin"
	"github.com/dshills/hxmotion/internal/renderer/toast"
)

// ActionQuit stops the interactive loop.
const ActionQuit = "app.quit"

// configDebounce is how long the config file must be quiet before it is
// reloaded.
const configDebounce = 150 * time.Millisecond

// statsTop is the number of actions in a dispatch stats summary.
const statsTop = 5

// bootstrapper initializes components in dependency order and tears them
// down again if a later step fails.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      app.opts,
		initOrder: make([]string, 0, 8),
	}
}

// bootstrap initializes all components. The caller runs cleanup on error.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initDocument,
		b.initModes,
		b.initToasts,
		b.initMotions,
		b.initDispatcher,
		b.initPlugin,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// initConfig loads configuration. A missing file falls back to defaults.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath, b.opts.ConfigOptions...)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.config = cfg
	b.app.changes = notify.New()
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger creates the logger. The Options level wins over the config.
func (b *bootstrapper) initLogger() error {
	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(b.app.config.Logging.Level)
	if b.opts.LogLevel != "" {
		lc.Level = ParseLogLevel(b.opts.LogLevel)
	}
	if b.opts.LogOutput != nil {
		lc.Output = b.opts.LogOutput
	}
	lc.Now = b.opts.Clock
	b.app.logger = NewLogger(lc)

	log := b.app.logger.WithComponent("config")
	b.app.changes.Subscribe(func(c notify.Change) {
		if c.Type == notify.ChangeSet {
			log.Debug("%s: %v -> %v", c.Path, c.OldValue, c.NewValue)
		}
	})

	if src := b.app.config.Source; src != "" {
		b.app.logger.Debug("config loaded from %s", src)
	} else {
		b.app.logger.Debug("using default config")
	}
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initDocument opens the file or wraps the given text.
func (b *bootstrapper) initDocument() error {
	langs := b.app.config.LanguageTable()

	var doc *Document
	switch {
	case b.opts.Text != "" || b.opts.File == "":
		doc = NewDocument("", b.opts.Text, langs)
	default:
		var err error
		doc, err = OpenDocument(b.opts.File, langs)
		if err != nil {
			return &InitError{Component: "document", Err: err}
		}
	}
	if b.opts.FileType != "" {
		doc.SetFileType(b.opts.FileType)
	}

	b.app.doc = doc
	b.app.inputCtx.FilePath = doc.Path
	b.app.inputCtx.FileType = doc.FileType
	b.app.logger.WithFields(map[string]any{
		"file":     doc.Name,
		"filetype": doc.FileType,
		"bytes":    doc.Buffer.Len(),
	}).Debug("document opened")

	b.initOrder = append(b.initOrder, "document")
	return nil
}

// initModes sets up the mode manager and key bindings.
func (b *bootstrapper) initModes() error {
	b.app.modeManager = mode.NewManager()
	b.app.modeManager.OnChange(func(from, to mode.Mode) {
		b.app.inputCtx.Mode = to.Name
		b.app.logger.Debug("mode %s -> %s", from.Name, to.Name)
	})
	b.app.inputCtx.Mode = b.app.modeManager.CurrentName()

	b.app.keymaps = keymap.NewRegistry()
	if err := keymap.LoadDefaults(b.app.keymaps); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	b.initOrder = append(b.initOrder, "modes")
	return nil
}

// initToasts creates the toast manager.
func (b *bootstrapper) initToasts() error {
	b.app.toasts = toast.NewManager(b.app.config.ToastSettings(),
		toast.WithClock(b.opts.Clock),
		toast.WithOnChange(b.app.Redraw),
	)
	b.initOrder = append(b.initOrder, "toasts")
	return nil
}

// initMotions builds the finder and the motion handler from config.
func (b *bootstrapper) initMotions() error {
	cfg := b.app.config
	behavior, ok := motionhandler.ParseBehavior(cfg.Motion.SelectBehavior)
	if !ok {
		return &InitError{
			Component: "motion",
			Err:       fmt.Errorf("unknown select behavior %q", cfg.Motion.SelectBehavior),
		}
	}
	b.app.finder = motion.NewFinder(cfg.Scanner(), motion.WithSpan(cfg.Span()))
	b.app.motions = motionhandler.NewHandler(b.app.finder, behavior)
	b.initOrder = append(b.initOrder, "motions")
	return nil
}

// initDispatcher wires handlers and services into the dispatcher.
func (b *bootstrapper) initDispatcher() error {
	cfg := dispatcher.DefaultConfig().WithPanicRecovery(true)
	if b.opts.Stats {
		cfg = cfg.WithMetrics()
	}
	d := dispatcher.New(cfg)
	d.SetEngine(b.app.doc.Buffer)
	d.SetCursors(b.app.doc.Cursors)
	d.SetModeManager(b.app.modeManager)
	d.SetRenderer(b.app)
	d.SetNotifier(b.app.toasts)

	d.RegisterNamespace("motion", b.app.motions)
	d.RegisterNamespace("mode", modehandler.NewModeHandler())
	d.RegisterNamespace("toast", toasthandler.NewHandler())
	d.RegisterHandlerFunc(ActionQuit, func(input.Action, *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithData("quit", true)
	})

	hook := dispatcher.NewLoggingHook(b.app.logger.WithComponent("dispatcher").Debug)
	d.RegisterPreHook(hook)
	d.RegisterPostHook(hook)

	b.app.dispatcher = d
	b.initOrder = append(b.initOrder, "dispatcher")
	return nil
}

// initPlugin loads and activates the startup script, if any.
func (b *bootstrapper) initPlugin() error {
	if b.opts.ScriptPath == "" {
		return nil
	}

	cfg := b.app.config
	opts := []plugin.HostOption{
		plugin.WithFinder(b.app),
		plugin.WithNotifier(b.app.toasts),
		plugin.WithHostConfig(map[string]any{
			"file":           b.app.doc.Path,
			"filetype":       b.app.doc.FileType,
			"span":           cfg.Motion.Span,
			"selectBehavior": cfg.Motion.SelectBehavior,
		}),
	}
	if b.opts.ScriptOutput != nil {
		opts = append(opts, plugin.WithHostOutput(b.opts.ScriptOutput))
	}

	host, err := plugin.NewHost(b.opts.ScriptPath, opts...)
	if err != nil {
		return &InitError{Component: "plugin", Err: err}
	}
	b.app.plugin = host
	b.initOrder = append(b.initOrder, "plugin")

	ctx := context.Background()
	if err := host.Load(ctx); err != nil {
		return &InitError{Component: "plugin", Err: err}
	}
	if err := host.Activate(ctx); err != nil {
		return &InitError{Component: "plugin", Err: err}
	}
	b.app.changes.Subscribe(func(c notify.Change) {
		var err error
		switch c.Type {
		case notify.ChangeSet:
			err = host.Emit(ctx, "on_config_change", c.Path, c.OldValue, c.NewValue)
		case notify.ChangeReload:
			err = host.Emit(ctx, "on_config_reload", c.Source)
		}
		if err != nil {
			b.app.logger.WithField("plugin", host.Name()).Warn("%v", err)
		}
	})
	b.app.logger.WithField("plugin", host.Name()).Info("script activated")
	return nil
}

// initWatcher reloads the config file when it changes on disk.
func (b *bootstrapper) initWatcher() error {
	if !b.opts.WatchConfig || b.opts.ConfigPath == "" {
		return nil
	}

	path, err := filepath.Abs(b.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	if _, err := os.Stat(path); err != nil {
		b.app.logger.Warn("not watching %s: %v", path, err)
		return nil
	}

	w, err := watcher.New(watcher.WithDebounce(configDebounce))
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	b.app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")

	log := b.app.logger.WithComponent("watcher")
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			log.Warn("%s removed; keeping current settings", ev.Path)
			return
		}
		_ = b.app.ReloadConfig()
	})
	w.OnError(func(err error) {
		log.Error("%v", err)
	})
	if err := w.Watch(path); err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	log.Debug("watching %s", path)
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "watcher":
		if b.app.watcher != nil {
			_ = b.app.watcher.Close()
			b.app.watcher = nil
		}
	case "plugin":
		if b.app.plugin != nil {
			_ = b.app.plugin.Close()
			b.app.plugin = nil
		}
	case "dispatcher":
		b.app.dispatcher = nil
	case "config":
		if b.app.changes != nil {
			b.app.changes.Close()
		}
	case "document":
		b.app.doc = nil
	}
}
