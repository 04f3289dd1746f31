package config

import (
	"errors"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/pixelcalc/internal/renderer/backend"
	"github.com/dshills/pixelcalc/internal/ui"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "PIXELCALC_"

// Config is the complete PixelCalc configuration.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`

	// Keymap maps key specs ("x", "Ctrl+C", "<Del>") to action names
	// ("*", "clear-entry", "quit", "none"). Entries layer over the
	// default bindings.
	Keymap map[string]string `toml:"keymap"`

	// Path is the file the configuration was read from, or where it
	// would have been read from if it existed.
	Path string `toml:"-"`
}

// LoggingConfig controls the application log.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" env:"LOG_LEVEL"`
	// File receives log lines. Empty discards them.
	File string `toml:"file" env:"LOG_FILE"`
}

// UIConfig controls the calculator screen.
type UIConfig struct {
	Mouse bool   `toml:"mouse" env:"MOUSE"`
	Theme string `toml:"theme" env:"THEME"`

	// Colors overrides single theme roles, e.g. display_fg = "#ffcc00".
	Colors map[string]string `toml:"colors"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			Mouse: true,
			Theme: ui.DefaultTheme,
		},
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Keymap = maps.Clone(c.Keymap)
	out.UI.Colors = maps.Clone(c.UI.Colors)
	return &out
}

// Overrides carries command line flag values. Zero fields are unset.
type Overrides struct {
	LogLevel string
	LogFile  string
	Theme    string
	NoMouse  bool
}

// Apply writes the set overrides into c.
func (o Overrides) Apply(c *Config) {
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
	if o.Theme != "" {
		c.UI.Theme = o.Theme
	}
	if o.NoMouse {
		c.UI.Mouse = false
	}
}

// Options controls Load.
type Options struct {
	// Path is the -config flag value. Empty falls back to
	// PIXELCALC_CONFIG, then to DefaultPath.
	Path string

	// Environ replaces the process environment when non-nil.
	// Keys include the PIXELCALC_ prefix.
	Environ map[string]string

	// Overrides are applied last.
	Overrides Overrides
}

// Load builds a configuration from defaults, the config file, the
// environment and the flag overrides, then validates it.
func Load(opts Options) (*Config, error) {
	path, explicit, err := resolvePath(opts)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.Path = path

	if path != "" {
		err := LoadFile(path, cfg)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// No config file at the default location
		case errors.Is(err, os.ErrNotExist):
			return nil, errors.Join(ErrFileNotFound, err)
		default:
			return nil, err
		}
	}

	if err := ApplyEnv(cfg, opts.Environ); err != nil {
		return nil, err
	}

	opts.Overrides.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath picks the config file. explicit is true when the user named it.
func resolvePath(opts Options) (path string, explicit bool, err error) {
	if opts.Path != "" {
		return opts.Path, true, nil
	}

	p, err := envConfigPath(opts.Environ)
	if err != nil {
		return "", false, err
	}
	if p != "" {
		return p, true, nil
	}

	return DefaultPath(), false, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/pixelcalc/config.toml, or the
// platform equivalent. It returns "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pixelcalc", "config.toml")
}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, &ValidationError{
			Path:    "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of debug, info, warn, error",
		})
	}

	if !ui.HasTheme(c.UI.Theme) {
		errs = append(errs, &ValidationError{
			Path:    "ui.theme",
			Value:   c.UI.Theme,
			Message: "unknown theme, want one of " + strings.Join(ui.ThemeNames(), ", "),
		})
	}

	for _, role := range slices.Sorted(maps.Keys(c.UI.Colors)) {
		color := c.UI.Colors[role]
		if !ui.IsRole(role) {
			errs = append(errs, &ValidationError{
				Path:    "ui.colors." + role,
				Value:   color,
				Message: "unknown color role",
			})
			continue
		}
		if !backend.ValidColor(backend.Color(color)) {
			errs = append(errs, &ValidationError{
				Path:    "ui.colors." + role,
				Value:   color,
				Message: "unknown color",
			})
		}
	}

	for _, spec := range slices.Sorted(maps.Keys(c.Keymap)) {
		if strings.TrimSpace(c.Keymap[spec]) == "" {
			errs = append(errs, &ValidationError{
				Path:    "keymap." + spec,
				Value:   "",
				Message: "action must not be empty",
			})
		}
	}

	return errors.Join(errs...)
}
