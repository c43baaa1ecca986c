package main

import (
	"context"
	"fmt"
	"os"

	"github.com/launchmat/launchmat/internal/config"
	"github.com/launchmat/launchmat/internal/kvstore"
	"github.com/launchmat/launchmat/internal/logger"
	"github.com/launchmat/launchmat/internal/mcp"
	"github.com/launchmat/launchmat/internal/session"
	"github.com/launchmat/launchmat/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"scan": true, "apps": true, "folders": true, "folder": true,
	"move": true, "remove": true,
	"launch": true, "reveal": true, "info": true,
	"export": true, "import": true, "reset": true, "report": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _                   _                _
  | |__ _ _  _ _ _  __| |_  _ __  __ _| |_
  | / _' | || | ' \/ _| ' \| '  \/ _' |  _|
  |_\__,_|\_,_|_||_\__|_||_|_|_|_\__,_|\__|

  Application shortcut organizer

  Usage: launchmat <command> [options]
         launchmat --help

  MCP server mode requires piped input.`)
}

func main() {
	logger.Setup()

	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before opening the store (no store needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil, "")
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	baseDir := config.BaseDir()

	backend, err := kvstore.Open(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	st := store.New(backend)
	sess := session.New(st, cfg)

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(sess, st, cfg, baseDir)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'launchmat --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(context.Background(), sess, st, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
