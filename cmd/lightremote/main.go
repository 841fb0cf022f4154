// Package main is the entry point for the lightremote demo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dshills/lightremote/internal/app"
	"github.com/dshills/lightremote/internal/config"
	"github.com/dshills/lightremote/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds command-line flags. Empty values leave the config untouched.
type options struct {
	configPath  string
	scriptPath  string
	interactive bool
	logLevel    string
	logFormat   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, cfg, logger.Logger); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		logger.Error("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func execute(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	var out io.Writer = os.Stdout
	if cfg.Interactive {
		// The screen owns the terminal; output is shown inside the UI.
		out = io.Discard
	}

	application, err := app.New(cfg, logger, out)
	if err != nil {
		return err
	}
	defer application.Close()

	switch {
	case cfg.Interactive:
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("interactive mode requires a terminal")
		}
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		return application.RunInteractive(ctx, screen)
	case cfg.Script != "":
		return application.RunScript(ctx, cfg.Script, os.Stdout)
	default:
		return application.RunDemo(ctx)
	}
}

func applyFlags(cfg *config.Config, opts options) {
	// A mode flag replaces whichever mode the config selected.
	if opts.scriptPath != "" {
		cfg.Script = opts.scriptPath
		cfg.Interactive = false
	}
	if opts.interactive {
		cfg.Interactive = true
		cfg.Script = ""
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua driver script to run instead of the demo")
	flag.StringVar(&opts.scriptPath, "s", "", "Lua driver script (shorthand)")
	flag.BoolVar(&opts.interactive, "interactive", false, "Start the interactive remote")
	flag.BoolVar(&opts.interactive, "i", false, "Start the interactive remote (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFormat, "log-format", "", "Log format (console, json)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lightremote - a remote control with undo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lightremote [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lightremote                       Run the on/off/undo demo\n")
		fmt.Fprintf(os.Stderr, "  lightremote -s evening.lua        Drive the remote from a script\n")
		fmt.Fprintf(os.Stderr, "  lightremote -i                    Use the remote interactively\n")
		fmt.Fprintf(os.Stderr, "  lightremote -c remote.toml        Load configuration\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("lightremote %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
