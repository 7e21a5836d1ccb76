package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdallahossam66/GRC-PROJECT/internal/report"
)

const instructions = `GRC maturity assessment tools.

Every tool takes a 'profile' argument: the organization's questionnaire answers
as a JSON object (industry, employees, mfa, incidentResponsePlan, ...). Start
with assess_maturity, then identify_gaps and risk_scenarios for detail. Use
generate_report for a complete written report.`

// NewServer builds an MCP server with every tool registered.
func NewServer(a *report.Assembler, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"grc",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	for _, t := range []*AssessmentTool{
		NewAssessMaturityTool(a),
		NewIdentifyGapsTool(a),
		NewBenchmarkTool(a),
		NewRiskScenariosTool(a),
	} {
		s.AddTool(t.Definition(), t.Handle)
	}

	reportTool := NewReportTool(a)
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	return s
}
