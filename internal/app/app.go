// Package app wires the motion core into a runnable application: it loads
// configuration, opens the document, registers the dispatcher handlers,
// owns the toast manager and plugin host, and runs either a batch of
// motions or the interactive terminal viewer.
package app

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/hxmotion/internal/config"
	"github.com/dshills/hxmotion/internal/config/notify"
	"github.com/dshills/hxmotion/internal/config/watcher"
	"github.com/dshills/hxmotion/internal/dispatcher"
	motionhandler "github.com/dshills/hxmotion/internal/dispatcher/handlers/motion"
	"github.com/dshills/hxmotion/internal/input"
	"github.com/dshills/hxmotion/internal/input/keymap"
	"github.com/dshills/hxmotion/internal/input/mode"
	"github.com/dshills/hxmotion/internal/motion"
	"github.com/dshills/hxmotion/internal/plugin"
	"github.com/dshills/hxmotion/internal/renderer"
	"github.com/dshills/hxmotion/internal/renderer/backend"
	"github.com/dshills/hxmotion/internal/renderer/toast"
)

// Application is the central coordinator for all components.
type Application struct {
	mu sync.RWMutex

	opts    Options
	logger  *Logger
	config  *config.Config
	changes *notify.Notifier
	finder  *motion.Finder

	doc         *Document
	modeManager *mode.Manager
	keymaps     *keymap.Registry
	dispatcher  *dispatcher.Dispatcher
	motions     *motionhandler.Handler
	toasts      *toast.Manager

	backend  backend.Backend
	renderer *renderer.Renderer
	status   string
	inputCtx *input.Context
	wake     chan struct{}

	plugin  *plugin.Host
	watcher *watcher.Watcher

	running atomic.Bool
	closed  atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty uses defaults and
	// the environment only.
	ConfigPath string

	// ConfigOptions are passed to config.Load.
	ConfigOptions []config.Option

	// File is the file to navigate. Ignored when Text is set.
	File string

	// Text is navigated instead of reading File. FileType names its
	// language.
	Text     string
	FileType string

	// LogLevel overrides logging.level when set.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// ScriptPath is a Lua script loaded and activated at startup.
	ScriptPath string

	// ScriptOutput receives the script's print output.
	ScriptOutput io.Writer

	// WatchConfig reloads the configuration when its file changes.
	WatchConfig bool

	// Stats counts dispatched actions. The summary is logged at info
	// level on Close.
	Stats bool

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	app := &Application{
		opts:     opts,
		inputCtx: input.NewContext(),
		wake:     make(chan struct{}, 1),
	}

	b := newBootstrapper(app)
	if err := b.bootstrap(); err != nil {
		b.cleanup()
		return nil, err
	}
	return app, nil
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Finder returns the active motion finder. It implements the finder
// provider used by scripts.
func (app *Application) Finder() *motion.Finder {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.finder
}

// ConfigChanges returns the notifier that publishes settings changed by
// a reload.
func (app *Application) ConfigChanges() *notify.Notifier {
	return app.changes
}

// Document returns the document being navigated.
func (app *Application) Document() *Document {
	return app.doc
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// DispatchStats returns the dispatch counters, keeping the statsTop busiest
// actions. ok is false unless Options.Stats was set.
func (app *Application) DispatchStats() (sum dispatcher.Summary, ok bool) {
	m := app.dispatcher.Metrics()
	if m == nil {
		return sum, false
	}
	return m.Summary(statsTop), true
}

// Modes returns the mode manager.
func (app *Application) Modes() *mode.Manager {
	return app.modeManager
}

// Toasts returns the toast manager.
func (app *Application) Toasts() *toast.Manager {
	return app.toasts
}

// Plugin returns the script host, or nil when no script was given.
func (app *Application) Plugin() *plugin.Host {
	return app.plugin
}

// Redraw requests a render of the next frame. It is safe to call from any
// goroutine.
func (app *Application) Redraw() {
	app.mu.RLock()
	r := app.renderer
	app.mu.RUnlock()
	if r != nil {
		r.Redraw()
	}
	select {
	case app.wake <- struct{}{}:
	default:
	}
}

// Status returns the status line text.
func (app *Application) Status() string {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.status
}

func (app *Application) setStatus(s string) {
	app.mu.Lock()
	app.status = s
	app.mu.Unlock()
}

// Close stops the watcher and script host. It is safe to call more than
// once.
func (app *Application) Close() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}

	var firstErr error
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			firstErr = err
		}
	}
	if app.plugin != nil {
		if err := app.plugin.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	app.changes.Close()
	if sum, ok := app.DispatchStats(); ok {
		app.logger.WithComponent("dispatcher").Info("stats: %s", sum)
	}
	app.logger.Debug("closed")
	return firstErr
}
