// Package mcptools exposes the maturity engine as MCP tools.
//
// Each tool follows the same pattern:
// - a struct holding the report.Assembler
// - Definition() returns the mcp.Tool schema
// - Handle() decodes the profile argument and returns JSON text
//
// Tool failures are returned as error results, never as Go errors, so the
// client sees the message.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/report"
)

const profileArgDescription = "Organization questionnaire profile as a JSON object string. " +
	"Unknown fields are rejected; omitted answers count as not implemented."

// AssessmentTool is a tool whose result is derived from the deterministic
// assessment of a profile.
type AssessmentTool struct {
	assembler   *report.Assembler
	name        string
	description string
	pick        func(report.Assessment) any
}

// NewAssessMaturityTool returns the assess_maturity tool.
func NewAssessMaturityTool(a *report.Assembler) *AssessmentTool {
	return &AssessmentTool{
		assembler: a,
		name:      "assess_maturity",
		description: "Score an organization's GRC maturity across governance, access control, " +
			"risk management and compliance. Returns per-dimension scores, the weighted overall " +
			"score and the industry weights used.",
		pick: func(as report.Assessment) any { return as.Maturity },
	}
}

// NewIdentifyGapsTool returns the identify_gaps tool.
func NewIdentifyGapsTool(a *report.Assembler) *AssessmentTool {
	return &AssessmentTool{
		assembler: a,
		name:      "identify_gaps",
		description: "List security gaps for an organization: dimensions below their industry " +
			"threshold and missing critical controls, ordered by severity.",
		pick: func(as report.Assessment) any { return as.Gaps },
	}
}

// NewBenchmarkTool returns the benchmark_comparison tool.
func NewBenchmarkTool(a *report.Assembler) *AssessmentTool {
	return &AssessmentTool{
		assembler: a,
		name:      "benchmark_comparison",
		description: "Compare an organization with industry peers: percentile, budget and " +
			"team size against averages, and missing certifications.",
		pick: func(as report.Assessment) any { return as.Benchmarks },
	}
}

// NewRiskScenariosTool returns the risk_scenarios tool.
func NewRiskScenariosTool(a *report.Assembler) *AssessmentTool {
	return &AssessmentTool{
		assembler: a,
		name:      "risk_scenarios",
		description: "Build the qualitative risk register for an organization: scenario, " +
			"impact, likelihood, level and mitigation.",
		pick: func(as report.Assessment) any { return as.Risks },
	}
}

// Definition returns the MCP tool definition.
func (t *AssessmentTool) Definition() mcp.Tool {
	return mcp.NewTool(t.name,
		mcp.WithDescription(t.description),
		mcp.WithString("profile",
			mcp.Required(),
			mcp.Description(profileArgDescription),
		),
	)
}

// Handle processes the tool call.
func (t *AssessmentTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, errResult := profileArg(req)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(t.pick(t.assembler.Assess(p)))
}

// profileArg decodes the required profile argument.
func profileArg(req mcp.CallToolRequest) (model.Profile, *mcp.CallToolResult) {
	raw := req.GetString("profile", "")
	if raw == "" {
		return model.Profile{}, mcp.NewToolResultError("'profile' is required")
	}
	p, err := model.DecodeProfile([]byte(raw), "json")
	if err != nil {
		return model.Profile{}, mcp.NewToolResultError(fmt.Sprintf("invalid profile: %v", err))
	}
	return p, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// boolArg extracts a boolean argument, returning defaultVal when the key is
// missing or not a boolean.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}
