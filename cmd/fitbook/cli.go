package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/logic"
	"github.com/fitbook/fitbook/internal/mcp"
	"github.com/fitbook/fitbook/internal/ops"
)

// deps carries what the subcommands operate on. It is nil for --help and --version.
type deps struct {
	mg      *logic.Manager
	cfg     *config.Config
	baseDir string
	logger  *log.Logger
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(d *deps) *cli.App {
	app := &cli.App{
		Name:    "fitbook",
		Usage:   "Local client book for fitness trainers",
		Version: Version,
		Commands: []*cli.Command{
			runCmd(d),
			clientsCmd(d),
			exportCmd(d),
			importCmd(d),
			reportCmd(d),
			mcpCmd(d),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// runCmd creates the run command.
func runCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run one client book command, e.g. fitbook run add n/John Doe p/98765432",
		ArgsUsage: "COMMAND...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print the result and the listed clients as JSON"},
		},
		Action: func(c *cli.Context) error {
			line := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(line) == "" {
				return outputError(errors.NewInvalidRequest("a command is required"))
			}

			result, err := d.mg.Execute(c.Context, line)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(mcp.RunOutput{
					Result: result,
					View:   ops.List(d.mg.Filtered(), len(d.mg.Clients())),
				})
			}
			return printResult(c.App.Writer, result, d.mg)
		},
	}
}

// clientsCmd creates the clients command.
func clientsCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "clients",
		Usage:     "List clients as JSON, optionally narrowed with find arguments",
		ArgsUsage: "[FIND ARGS...]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				line := command.WordFind + " " + strings.Join(c.Args().Slice(), " ")
				if _, err := d.mg.Execute(c.Context, line); err != nil {
					return outputError(err)
				}
			}
			return outputJSON(ops.List(d.mg.Filtered(), len(d.mg.Clients())))
		},
	}
}

// exportCmd creates the export command.
func exportCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all clients to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.fitbook/exports/clients-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(c.Context, d.mg.Clients(), d.baseDir, d.cfg, ops.ExportInput{
				Path: c.String("path"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import clients from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(c.Context, d.mg, d.baseDir, d.cfg, ops.ImportInput{
				Path: c.String("path"),
				Mode: ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// reportCmd creates the report command.
func reportCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Write an HTML profile of one client",
		ArgsUsage: "INDEX",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Report file path (default: ~/.fitbook/exports/<name>-<timestamp>.html)"},
		},
		Action: func(c *cli.Context) error {
			raw := c.Args().First()
			index, err := strconv.Atoi(raw)
			if err != nil {
				return outputError(errors.NewInvalidIndex(raw, ""))
			}
			target, err := d.mg.At(index)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Report(target, d.baseDir, d.cfg, ops.ReportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the client book over MCP on stdio",
		Action: func(c *cli.Context) error {
			if err := mcp.Run(d.mg, d.cfg, d.baseDir, Version, d.logger); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// printResult writes a command result as colored text.
func printResult(w io.Writer, result command.Result, mg *logic.Manager) error {
	if w == nil {
		w = os.Stdout
	}
	color.New(color.FgGreen).Fprintln(w, result.Message)
	if result.ShowHelp {
		fmt.Fprintln(w, command.HelpText())
	}
	if result.SuggestedInput != "" {
		color.New(color.Faint).Fprintf(w, "Edit and run: %s\n", result.SuggestedInput)
	}
	if result.Exit || result.ShowHelp {
		return nil
	}

	faint := color.New(color.Faint)
	for i, c := range mg.Filtered() {
		fmt.Fprintf(w, "%s %s\n", faint.Sprintf("%3d.", i+1), c)
	}
	return nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI, echoing usage text for parse errors.
func outputError(err error) error {
	var fErr *errors.FitError
	if stderrors.As(err, &fErr) {
		msg := fmt.Sprintf("[%s] %s", fErr.Code, fErr.Message)
		if fErr.Usage != "" {
			msg += "\n" + fErr.Usage
		}
		return cli.Exit(msg, 1)
	}
	return cli.Exit(err.Error(), 1)
}
