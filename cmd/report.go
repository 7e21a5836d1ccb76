package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a maturity report from a questionnaire profile",
	Long: `Generate a GRC maturity report.

Scores, gaps, benchmark comparison and the risk register are computed
deterministically. The executive summary, recommendations, compliance
roadmap and risk quantification are requested from the configured LLM;
any section that fails or times out uses deterministic fallback text and
the report records why.

Examples:
  # Markdown report to stdout
  grc report --profile acme.yaml

  # Excel workbook, no LLM calls
  grc report --profile acme.json --format xlsx --output acme.xlsx --no-ai

  # Profile from stdin
  cat acme.json | grc report --profile - --format json`,
	RunE: runReport,
}

func init() {
	f := reportCmd.Flags()
	f.String("profile", "", "profile file (JSON or YAML; - for stdin)")
	f.String("format", "markdown", "output format: markdown, json, yaml or xlsx")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("no-ai", false, "skip LLM calls and use fallback narrative")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, _ := cmd.Flags().GetString("profile")
	formatName, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	noAI, _ := cmd.Flags().GetBool("no-ai")

	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if format.Binary() && output == "" {
		return eris.Errorf("%s output requires --output", format)
	}

	p, err := readProfile(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	mode := "narrative"
	if noAI {
		mode = "report"
	}
	env, err := initEnv(mode, !noAI)
	if err != nil {
		return err
	}

	rep := env.Assembler.Generate(ctx, p)
	logFallbacks(rep)

	return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
		return report.Write(w, rep, format)
	})
}

// writeOutput runs write against the named file, or against stdout when
// path is empty.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create output file %s", path)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "close output file %s", path)
	}
	zap.L().Info("report written", zap.String("path", path))
	return nil
}

func logFallbacks(rep *model.Report) {
	for section, origin := range rep.Narrative {
		if origin.Source != model.SourceFallback || origin.ErrorKind == "" {
			continue
		}
		zap.L().Warn("report section used fallback",
			zap.String("report_id", rep.ID),
			zap.String("section", section),
			zap.String("error_kind", origin.ErrorKind),
		)
	}
}
