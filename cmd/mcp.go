package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdallahossam66/GRC-PROJECT/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the assessment tools over MCP (stdio)",
	Long: `Run an MCP server on stdin/stdout exposing assess_maturity, identify_gaps,
benchmark_comparison, risk_scenarios and generate_report.

Logs go to stderr so they never corrupt the protocol stream. When the
narrative provider is not configured, generate_report still works with
fallback narrative.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		withNarrative := true
		if err := cfg.Validate("narrative"); err != nil {
			zap.L().Warn("narrative provider not configured, reports use fallback text", zap.Error(err))
			withNarrative = false
		}

		env, err := initEnv("mcp", withNarrative)
		if err != nil {
			return err
		}

		zap.L().Info("mcp: serving on stdio", zap.String("version", version))
		return server.ServeStdio(mcptools.NewServer(env.Assembler, version))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
