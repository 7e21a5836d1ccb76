package mcptools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abdallahossam66/GRC-PROJECT/internal/report"
)

// ReportTool handles the generate_report MCP tool.
type ReportTool struct {
	assembler *report.Assembler
}

// NewReportTool creates a ReportTool.
func NewReportTool(a *report.Assembler) *ReportTool {
	return &ReportTool{assembler: a}
}

// Definition returns the MCP tool definition for generate_report.
func (t *ReportTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_report",
		mcp.WithDescription(
			"Generate the full GRC maturity report for an organization. "+
				"Narrative sections are written by the configured LLM when 'ai' is true, "+
				"otherwise deterministic fallback text is used.",
		),
		mcp.WithString("profile",
			mcp.Required(),
			mcp.Description(profileArgDescription),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default), json or yaml"),
			mcp.Enum("markdown", "json", "yaml"),
		),
		mcp.WithBoolean("ai",
			mcp.Description("Request narrative sections from the LLM (default: false)"),
		),
	)
}

// Handle processes the generate_report tool call.
func (t *ReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := profileArg(req)
	if errResult != nil {
		return errResult, nil
	}

	format, err := report.ParseFormat(req.GetString("format", ""))
	if err != nil || format.Binary() {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q", req.GetString("format", ""))), nil
	}

	assembler := t.assembler
	if !boolArg(req, "ai", false) {
		assembler = assembler.WithoutNarrative()
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, assembler.Generate(ctx, p), format); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render report: %v", err)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
