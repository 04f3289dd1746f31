package app

import (
	"maps"

	"github.com/dshills/pixelcalc/internal/config"
	"github.com/dshills/pixelcalc/internal/config/watcher"
	"github.com/dshills/pixelcalc/internal/input/keymap"
	"github.com/dshills/pixelcalc/internal/renderer/backend"
)

// initWatcher creates the config file watcher. It is started by Run.
func (app *Application) initWatcher(path string) error {
	log := app.logger.WithComponent("config")

	w, err := watcher.New(path, watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error: %v", err)
	}))
	if err != nil {
		return err
	}
	w.OnChange(app.onConfigChange)
	app.watcher = w
	return nil
}

// onConfigChange runs on the watcher goroutine. It loads the new config
// and hands it to the event loop, which owns every component it affects.
func (app *Application) onConfigChange(ev watcher.Event) {
	log := app.logger.WithComponent("config")

	cfg, err := config.Load(app.loadOptions())
	if err != nil {
		log.Warn("%v; keeping previous config", NewComponentError("config", "reload", err))
		return
	}
	log.Info("reloading after %s of %s", ev.Op, ev.Path)

	app.mu.Lock()
	app.pending = cfg
	b := app.backend
	app.mu.Unlock()

	if b != nil && app.running.Load() {
		b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	}
}

// applyPendingConfig swaps in a reloaded config. Parts that fail to
// build keep their previous state.
func (app *Application) applyPendingConfig() {
	app.mu.Lock()
	cfg := app.pending
	app.pending = nil
	app.mu.Unlock()

	if cfg == nil {
		return
	}
	app.applyConfig(cfg)
}

func (app *Application) applyConfig(cfg *config.Config) {
	log := app.logger.WithComponent("config")
	old := app.Config()

	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	if !maps.Equal(old.Keymap, cfg.Keymap) {
		km, err := keymap.WithOverrides(cfg.Keymap)
		if err != nil {
			log.Warn("%v; keeping previous keymap", NewComponentError("keymap", "reload", err))
			cfg.Keymap = old.Keymap
		} else {
			app.keymap = km
		}
	}

	theme, err := buildTheme(cfg)
	if err != nil {
		log.Warn("%v; keeping previous theme", NewComponentError("ui", "reload", err))
		cfg.UI.Theme = old.UI.Theme
		cfg.UI.Colors = old.UI.Colors
	} else {
		app.screen.SetTheme(theme)
	}

	if cfg.UI.Mouse != old.UI.Mouse {
		if cfg.UI.Mouse {
			app.backend.EnableMouse()
		} else {
			app.backend.DisableMouse()
		}
	}

	if cfg.Logging.File != old.Logging.File {
		log.Warn("logging.file change takes effect on restart")
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	log.Info("config applied")
}
