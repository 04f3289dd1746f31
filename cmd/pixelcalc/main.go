// Package main is the entry point for the PixelCalc calculator.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/pixelcalc/internal/app"
	"github.com/dshills/pixelcalc/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errExit stops run after flag handling printed help or version.
var errExit = errors.New("exit")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args, os.Stdout, os.Stderr)
	if errors.Is(err, errExit) {
		return 0
	}
	if err != nil {
		return 2
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags(args []string, stdout, stderr io.Writer) (app.Options, error) {
	opts := app.Options{WatchConfig: true}
	var showVersion bool
	var showHelp bool
	var noWatch bool

	fs := flag.NewFlagSet("pixelcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.Overrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.Overrides.LogFile, "log-file", "", "Append logs to this file")
	fs.StringVar(&opts.Overrides.Theme, "theme", "", "Color theme (amber, mono)")
	fs.BoolVar(&opts.Overrides.NoMouse, "no-mouse", false, "Disable mouse input")
	fs.BoolVar(&noWatch, "no-watch", false, "Do not reload the config file on change")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&showHelp, "help", false, "Show help message")
	fs.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "PixelCalc - four-function terminal calculator\n\n")
		fmt.Fprintf(stderr, "Usage: pixelcalc [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pixelcalc                     Start with the default config\n")
		fmt.Fprintf(stderr, "  pixelcalc -theme mono         Start with the monochrome theme\n")
		fmt.Fprintf(stderr, "  pixelcalc -log-file calc.log  Write logs to calc.log\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, errExit
		}
		return opts, err
	}

	if showHelp {
		fs.Usage()
		return opts, errExit
	}

	if showVersion {
		fmt.Fprintf(stdout, "PixelCalc %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return opts, errExit
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments %v\n", fs.Args())
		fs.Usage()
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.WatchConfig = !noWatch
	return opts, nil
}
