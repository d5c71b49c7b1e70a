package app

import (
	"fmt"

	"github.com/dshills/hxmotion/internal/config"
	motionhandler "github.com/dshills/hxmotion/internal/dispatcher/handlers/motion"
	"github.com/dshills/hxmotion/internal/motion"
	"github.com/dshills/hxmotion/internal/renderer/toast"
)

// ReloadConfig reads the configuration again and applies it to the
// running components. On failure the previous settings stay in effect
// and an error toast is shown.
func (app *Application) ReloadConfig() error {
	log := app.logger.WithComponent("config")

	cfg, err := config.Load(app.opts.ConfigPath, app.opts.ConfigOptions...)
	if err == nil {
		if _, ok := motionhandler.ParseBehavior(cfg.Motion.SelectBehavior); !ok {
			err = fmt.Errorf("unknown select behavior %q", cfg.Motion.SelectBehavior)
		}
	}
	if err != nil {
		log.Warn("reload failed: %v", err)
		app.toasts.Show(fmt.Sprintf("config: %v", err), toast.LevelError)
		return err
	}

	old := app.Config()
	app.apply(cfg)
	log.Info("reloaded from %s", displaySource(cfg))
	app.changes.Publish(config.Diff(old, cfg), displaySource(cfg))
	app.toasts.Show("config reloaded", toast.LevelInfo)
	return nil
}

// apply swaps in cfg. The behavior must already be validated.
func (app *Application) apply(cfg *config.Config) {
	behavior, _ := motionhandler.ParseBehavior(cfg.Motion.SelectBehavior)
	finder := motion.NewFinder(cfg.Scanner(), motion.WithSpan(cfg.Span()))

	app.mu.Lock()
	app.config = cfg
	app.finder = finder
	app.mu.Unlock()

	app.motions.SetFinder(finder)
	app.motions.SetBehavior(behavior)
	app.toasts.SetConfig(cfg.ToastSettings())
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	}
	app.Redraw()
}

func displaySource(cfg *config.Config) string {
	if cfg.Source == "" {
		return "defaults"
	}
	return cfg.Source
}
