// Package app provides the main application structure and coordination
// for PixelCalc. It wires the calculator engine to the terminal screen,
// the keymap and the configuration, and runs the event loop.
package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/pixelcalc/internal/calc"
	"github.com/dshills/pixelcalc/internal/config"
	"github.com/dshills/pixelcalc/internal/config/watcher"
	"github.com/dshills/pixelcalc/internal/input/keymap"
	"github.com/dshills/pixelcalc/internal/renderer/backend"
	"github.com/dshills/pixelcalc/internal/ui"
)

// Application is the central coordinator for all PixelCalc components.
// Only the event loop goroutine touches the engine and the screen.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	logger  *Logger
	logFile io.Closer
	session uuid.UUID

	engine  *calc.Engine
	keymap  *keymap.Keymap
	screen  *ui.Screen
	backend backend.Backend

	watcher *watcher.Watcher
	// pending is a reloaded config waiting for the event loop.
	pending *config.Config

	// mouseDown suppresses repeats while the left button is held.
	mouseDown bool

	running      atomic.Bool
	done         chan struct{}
	shutdownOnce sync.Once
	closeOnce    sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Environ replaces the process environment for config lookups.
	Environ map[string]string

	// Overrides are command line settings applied over the config.
	Overrides config.Overrides

	// LogOutput replaces the configured log file when non-nil.
	LogOutput io.Writer

	// WatchConfig reloads the config file when it changes.
	WatchConfig bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		session: uuid.New(),
	}

	if err := app.bootstrap(); err != nil {
		app.closeResources()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(app.loadOptions())
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger
	out := app.opts.LogOutput
	if out == nil {
		var closer io.Closer
		out, closer, err = openLogOutput(cfg.Logging.File)
		if err != nil {
			return &InitError{Component: "logging", Err: err}
		}
		app.logFile = closer
	}
	app.logger = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(cfg.Logging.Level),
		Output: out,
		Prefix: "pixelcalc",
	}).WithField("session", app.session.String())

	// 3. Keymap
	app.keymap, err = keymap.WithOverrides(cfg.Keymap)
	if err != nil {
		return &InitError{Component: "keymap", Err: err}
	}

	// 4. Screen
	theme, err := buildTheme(cfg)
	if err != nil {
		return &InitError{Component: "ui", Err: err}
	}
	app.screen = ui.NewScreen(theme)

	// 5. Engine
	engineLog := app.logger.WithComponent("engine")
	app.engine = calc.New(calc.WithObserver(func(display string) {
		engineLog.Debug("display %q", display)
	}))

	// 6. Config watcher; failure only disables live reload.
	if app.opts.WatchConfig && cfg.Path != "" {
		if err := app.initWatcher(cfg.Path); err != nil {
			app.logger.WithComponent("config").Warn("live reload disabled: %v", err)
		}
	}

	app.logger.Info("config loaded from %s", describePath(cfg.Path))
	return nil
}

func (app *Application) loadOptions() config.Options {
	return config.Options{
		Path:      app.opts.ConfigPath,
		Environ:   app.opts.Environ,
		Overrides: app.opts.Overrides,
	}
}

// buildTheme resolves the configured theme with its color overrides.
func buildTheme(cfg *config.Config) (ui.Theme, error) {
	theme, err := ui.ThemeByName(cfg.UI.Theme)
	if err != nil {
		return ui.Theme{}, err
	}
	return theme.WithColors(cfg.UI.Colors)
}

func describePath(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run starts the application main loop.
// Blocks until the user quits (ErrQuit) or Shutdown is called (nil).
func (app *Application) Run() error {
	app.mu.Lock()
	select {
	case <-app.done:
		app.mu.Unlock()
		return nil
	default:
	}
	if !app.running.CompareAndSwap(false, true) {
		app.mu.Unlock()
		return ErrAlreadyRunning
	}
	b := app.backend
	app.mu.Unlock()

	// A Shutdown that arrived while running leaves the closing to us, so
	// nothing the loop logs is written to a closed file.
	defer func() {
		app.running.Store(false)
		select {
		case <-app.done:
			app.closeResources()
		default:
		}
	}()

	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	b.HideCursor()
	if app.config.UI.Mouse {
		b.EnableMouse()
	}

	app.screen.Layout(b.Size())
	app.redraw()

	if app.watcher != nil {
		if err := app.watcher.Start(); err != nil {
			app.logger.WithComponent("config").Warn("live reload disabled: %v", err)
		}
	}

	app.logger.Info("ready")
	err := app.eventLoop()
	app.logger.Info("stopped")
	return err
}

// Shutdown initiates graceful shutdown. Safe to call more than once and
// from any goroutine.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		app.mu.Lock()
		close(app.done)
		running := app.running.Load()
		b := app.backend
		app.mu.Unlock()

		if !running {
			app.closeResources()
			return
		}
		if b != nil {
			// Wake the loop out of PollEvent. Run closes resources on exit.
			b.PostEvent(backend.Event{Type: backend.EventInterrupt})
		}
	})
}

// closeResources releases the watcher and the log file once.
func (app *Application) closeResources() {
	app.closeOnce.Do(app.releaseResources)
}

// The log file closes last so the watcher's failure can still be logged.
func (app *Application) releaseResources() {
	if app.watcher != nil {
		if err := WrapError(app.watcher.Close(), "closing config watcher"); err != nil && app.logger != nil {
			app.logger.Warn("shutdown: %v", err)
		}
	}
	if app.logFile != nil {
		// Nowhere left to report a failure.
		_ = app.logFile.Close()
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// Engine returns the calculator engine.
func (app *Application) Engine() *calc.Engine {
	return app.engine
}

// Screen returns the calculator screen.
func (app *Application) Screen() *ui.Screen {
	return app.screen
}

// Keymap returns the active keymap.
func (app *Application) Keymap() *keymap.Keymap {
	return app.keymap
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return NullLogger
	}
	return app.logger
}

// SessionID identifies this run in the log.
func (app *Application) SessionID() string {
	return app.session.String()
}
