// Package config provides the configuration system for PixelCalc.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← PIXELCALC_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/pixelcalc/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # File Format
//
//	[logging]
//	level = "info"
//	file  = "/tmp/pixelcalc.log"
//
//	[ui]
//	mouse = true
//	theme = "amber"
//
//	[ui.colors]
//	display_fg = "#ffcc00"
//
//	[keymap]
//	"Delete" = "clear-entry"
//	"x"      = "*"
//
// # Basic Usage
//
//	cfg, err := config.Load(config.Options{Path: flagPath})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.UI.Theme)
//
// A missing file at the default location is not an error. A file named
// with -config or PIXELCALC_CONFIG must exist.
//
// The watcher sub-package reloads the file when it changes on disk.
package config
