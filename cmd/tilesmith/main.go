// Package main is the entry point for the tilesmith map editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/tilesmith/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.PalettePath, "palette", "", "Tile palette file (.toml, .yaml)")
	flag.StringVar(&opts.PalettePath, "p", "", "Tile palette file (shorthand)")
	flag.StringVar(&opts.Commands, "run", "", "Command file to execute (- for stdin)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the palette when it changes")
	flag.BoolVar(&opts.Dump, "dump", false, "Print the map after running commands")
	flag.BoolVar(&opts.Stats, "stats", false, "Print tile counts after running commands")
	flag.BoolVar(&opts.View, "view", false, "Show the map in the terminal (arrows scroll, u/r undo/redo, s save, q quit)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tilesmith - grid tile map editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tilesmith [options] [map]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tilesmith -dump level.txt                 Print a map\n")
		fmt.Fprintf(os.Stderr, "  tilesmith -run edits.txt -stats level.txt  Apply edits and count tiles\n")
		fmt.Fprintf(os.Stderr, "  echo 'flood 0 0 ~' | tilesmith -run - -dump level.txt\n")
		fmt.Fprintf(os.Stderr, "  tilesmith -view -watch level.txt          Browse a map, reloading the palette\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("tilesmith %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one map file, got %d\n", flag.NArg())
		os.Exit(1)
	}
	opts.MapPath = flag.Arg(0)

	return opts
}
