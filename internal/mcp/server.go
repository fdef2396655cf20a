// Package mcp exposes the client book over the Model Context Protocol on stdio.
// It is a second presentation layer next to the interactive prompt.
package mcp

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/logic"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

var runToolDef = mcp.NewTool("fitbook_run",
	mcp.WithDescription("Run one fitbook command line, e.g. \"add n/John Doe p/98765432 w/80\" or \"find t/gym\". "+
		"Returns the result message and the clients currently shown. Indexes in commands refer to that list."),
	mcp.WithString("command", mcp.Required(), mcp.Description("The command line to execute")),
)

var clientsToolDef = mcp.NewTool("fitbook_clients",
	mcp.WithDescription("List clients. By default lists the clients shown by the last find or list command."),
	mcp.WithBoolean("all", mcp.Description("List every client instead of the current view")),
)

var exportToolDef = mcp.NewTool("fitbook_export",
	mcp.WithDescription("Export all clients to a JSONL file in the exports directory"),
	mcp.WithString("path", mcp.Description("Destination .jsonl file (default: exports/clients-<timestamp>.jsonl)")),
)

var importToolDef = mcp.NewTool("fitbook_import",
	mcp.WithDescription("Import clients from a JSONL export file"),
	mcp.WithString("path", mcp.Required(), mcp.Description("Source .jsonl file")),
	mcp.WithString("mode", mcp.Description("Collision mode: error (default, all-or-nothing) or replace")),
)

var reportToolDef = mcp.NewTool("fitbook_report",
	mcp.WithDescription("Write an HTML profile of one client"),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("1-based index in the current view")),
	mcp.WithString("path", mcp.Description("Destination .html file (default: exports/<name>-<timestamp>.html)")),
)

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"fitbook_run": {
		def:     runToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRun },
	},
	"fitbook_clients": {
		def:     clientsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleClients },
	},
	"fitbook_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"fitbook_import": {
		def:     importToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport },
	},
	"fitbook_report": {
		def:     reportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReport },
	},
}

// AllToolNames returns every tool name, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateDisabledTools returns the names in the list that are not tools.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates an MCP server with the fitbook tools registered, minus
// those listed in cfg.DisabledTools.
func NewServer(mg *logic.Manager, cfg *config.Config, baseDir, version string, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"fitbook",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(mg, cfg, baseDir, logger)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	if unknown := ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		h.logger.Warn("ignoring unknown disabled_tools entries", "tools", unknown)
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run serves the MCP protocol on stdio until the client disconnects.
func Run(mg *logic.Manager, cfg *config.Config, baseDir, version string, logger *log.Logger) error {
	s := NewServer(mg, cfg, baseDir, version, logger)
	return server.ServeStdio(s)
}
