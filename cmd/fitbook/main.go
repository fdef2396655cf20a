package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"

	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/logic"
	"github.com/fitbook/fitbook/internal/mcp"
	"github.com/fitbook/fitbook/internal/model"
	"github.com/fitbook/fitbook/internal/storage"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"run": true, "clients": true, "export": true, "import": true,
	"report": true, "mcp": true, "help": true,
}

// isCLIMode determines if we should run a CLI subcommand.
func isCLIMode(args []string) bool {
	if len(args) < 2 {
		return false
	}
	arg := args[1]
	if cliCommands[arg] {
		return true
	}
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v"
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	if len(args) < 2 {
		return false
	}
	arg := args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// newLogger returns a stderr logger at the configured level. Unknown levels fall back to warn.
func newLogger(level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  lvl,
		Prefix: "fitbook",
	})
}

// openBook opens the configured store and loads the client book from it.
func openBook(ctx context.Context, cfg *config.Config, baseDir string, logger *log.Logger) (*logic.Manager, error) {
	store, err := storage.Open(cfg, baseDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	mg := logic.New(model.New(), store, logger)
	if err := mg.Load(ctx, !cfg.SkipSampleData); err != nil {
		_ = mg.Close()
		return nil, err
	}
	return mg, nil
}

func fail(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	ctx := context.Background()

	// Handle --help/--version before touching storage
	if isHelpOrVersion(os.Args) {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fail("%v", err)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && !isCLIMode(os.Args) && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'fitbook --help' for usage.\n")
		os.Exit(1)
	}

	baseDir, err := config.BaseDir()
	if err != nil {
		fail("could not determine base directory: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = baseDir
	}
	cfg, err := config.LoadWithRepo(baseDir, wd)
	if err != nil {
		fail("failed to load config: %v", err)
	}
	logger := newLogger(cfg.LogLevel)

	mg, err := openBook(ctx, cfg, baseDir, logger)
	if err != nil {
		fail("%v", err)
	}
	defer mg.Close()

	d := &deps{mg: mg, cfg: cfg, baseDir: baseDir, logger: logger}

	switch {
	case len(os.Args) < 2 && isTerminal():
		err = runREPL(ctx, mg, os.Stdin, os.Stdout)
	case isCLIMode(os.Args):
		err = newCLIApp(d).Run(os.Args)
	default:
		err = mcp.Run(mg, cfg, baseDir, Version, logger)
	}
	if err != nil {
		_ = mg.Close()
		fail("%v", err)
	}
}
