package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/errors"
	"github.com/fitbook/fitbook/internal/logic"
	"github.com/fitbook/fitbook/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers. The manager is not safe
// for concurrent use, so every handler holds mu while touching it.
type Handlers struct {
	mu      sync.Mutex
	mg      *logic.Manager
	cfg     *config.Config
	baseDir string
	logger  *log.Logger
}

// NewHandlers creates a new Handlers instance. A nil logger discards output.
func NewHandlers(mg *logic.Manager, cfg *config.Config, baseDir string, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handlers{mg: mg, cfg: cfg, baseDir: baseDir, logger: logger}
}

// RunRequest represents the arguments for fitbook_run.
type RunRequest struct {
	Command string `json:"command"`
}

// ClientsRequest represents the arguments for fitbook_clients.
type ClientsRequest struct {
	All bool `json:"all,omitempty"`
}

// ExportRequest represents the arguments for fitbook_export.
type ExportRequest struct {
	Path string `json:"path,omitempty"`
}

// ImportRequest represents the arguments for fitbook_import.
type ImportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

// ReportRequest represents the arguments for fitbook_report.
type ReportRequest struct {
	Index int    `json:"index"`
	Path  string `json:"path,omitempty"`
}

// RunOutput is the result of fitbook_run.
type RunOutput struct {
	command.Result
	View ops.ListOutput `json:"view"`
}

// HandleRun handles the fitbook_run tool call.
func (h *Handlers) HandleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RunRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.mg.Execute(ctx, input.Command)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(RunOutput{
		Result: result,
		View:   ops.List(h.mg.Filtered(), len(h.mg.Clients())),
	})
}

// HandleClients handles the fitbook_clients tool call.
func (h *Handlers) HandleClients(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ClientsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	all := h.mg.Clients()
	shown := h.mg.Filtered()
	if input.All {
		shown = all
	}
	return successResult(ops.List(shown, len(all)))
}

// HandleExport handles the fitbook_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	clients := h.mg.Clients()
	h.mu.Unlock()

	result, err := ops.Export(ctx, clients, h.baseDir, h.cfg, ops.ExportInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleImport handles the fitbook_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := ops.Import(ctx, h.mg, h.baseDir, h.cfg, ops.ImportInput{
		Path: input.Path,
		Mode: ops.ImportMode(input.Mode),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleReport handles the fitbook_report tool call.
func (h *Handlers) HandleReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	c, err := h.mg.At(input.Index)
	h.mu.Unlock()
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Report(c, h.baseDir, h.cfg, ops.ReportInput{Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from any error.
// Internal error messages are replaced so paths and driver errors stay private.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var fErr *errors.FitError
	if stderrors.As(err, &fErr) {
		errorObj := map[string]any{
			"code":    fErr.Code,
			"kind":    fErr.Kind,
			"message": fErr.Message,
		}
		if fErr.Code == errors.ErrInternal {
			errorObj["message"] = "an internal error occurred"
		} else if fErr.Details != nil {
			errorObj["details"] = fErr.Details
		}
		if fErr.Usage != "" {
			errorObj["usage"] = fErr.Usage
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"kind":    errors.KindInternal,
				"message": "an internal error occurred",
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
