package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/report"
	"github.com/abdallahossam66/GRC-PROJECT/internal/scorer"
)

var titleCase = cases.Title(language.English)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a profile without generating narrative",
	Long: `Compute maturity scores, gaps, the industry benchmark comparison and the
risk register for a profile. No LLM calls are made.

Examples:
  # Human-readable table
  grc score --profile acme.yaml

  # Export to CSV
  grc score --profile acme.yaml --format csv --output acme.csv

  # Machine-readable
  grc score --profile acme.json --format json`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("profile", "", "profile file (JSON or YAML; - for stdin)")
	f.String("format", "table", "output format: table, csv or json")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("explain", false, "with table format, list base scores and every adjustment applied")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("profile")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	explain, _ := cmd.Flags().GetBool("explain")

	var write func(io.Writer, model.Profile, report.Assessment) error
	switch format {
	case "table":
		write = writeScoreTable
	case "csv":
		write = writeScoreCSV
	case "json":
		write = writeScoreJSON
	default:
		return eris.Errorf("score: unsupported format %q", format)
	}

	p, err := readProfile(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	env, err := initEnv("report", false)
	if err != nil {
		return err
	}
	a := env.Assembler.Assess(p)

	return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
		if err := write(w, p, a); err != nil {
			return err
		}
		if explain && format == "table" {
			return writeBreakdown(w, scorer.NewEngine(env.Tables).Explain(p))
		}
		return nil
	})
}

func writeScoreJSON(w io.Writer, _ model.Profile, a report.Assessment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(a), "score: encode json")
}

func writeScoreCSV(w io.Writer, _ model.Profile, a report.Assessment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"section", "item", "value", "detail"}); err != nil {
		return eris.Wrap(err, "score: write CSV header")
	}

	m := a.Maturity
	rows := make([][]string, 0, len(model.Dimensions)+len(a.Gaps)+len(a.Risks)+2)
	for _, d := range model.Dimensions {
		rows = append(rows, []string{"maturity", string(d), strconv.Itoa(m.Get(d)),
			fmt.Sprintf("weight %.2f threshold %d", m.Thresholds[d].Weight, m.Thresholds[d].Threshold)})
	}
	rows = append(rows, []string{"maturity", "overall", strconv.Itoa(m.Overall), m.MaturityLevel()})
	rows = append(rows, []string{"benchmark", "percentile", strconv.Itoa(a.Benchmarks.Percentile), a.Benchmarks.PercentileLabel})
	for _, g := range a.Gaps {
		rows = append(rows, []string{"gap", g.Category, string(g.Severity), g.Description})
	}
	for _, r := range a.Risks {
		rows = append(rows, []string{"risk", r.ID, r.Level, r.Risk})
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "score: write CSV row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "score: flush CSV")
}

func writeScoreTable(w io.Writer, p model.Profile, a report.Assessment) error {
	var b strings.Builder
	m := a.Maturity
	bm := a.Benchmarks

	fmt.Fprintf(&b, "Organization: %s\n", p.DisplayName())
	fmt.Fprintf(&b, "Industry:     %s\n", titleCase.String(m.Resolved))
	fmt.Fprintf(&b, "Overall:      %d / 100 (%s)\n\n", m.Overall, m.MaturityLevel())

	fmt.Fprintf(&b, "%-12s %6s %7s %10s\n", "Dimension", "Score", "Weight", "Threshold")
	b.WriteString(strings.Repeat("-", 38) + "\n")
	for _, d := range model.Dimensions {
		wt := m.Thresholds[d]
		fmt.Fprintf(&b, "%-12s %6d %6.0f%% %10d\n", titleCase.String(string(d)), m.Get(d), wt.Weight*100, wt.Threshold)
	}

	fmt.Fprintf(&b, "\nBenchmark:    percentile %d (%s), industry average %.0f\n",
		bm.Percentile, bm.PercentileLabel, bm.IndustryAverage)
	fmt.Fprintf(&b, "Budget:       %s (%.0f%% of expected)\n", bm.BudgetStatus, bm.BudgetRatio*100)
	fmt.Fprintf(&b, "Team:         %s (%.0f%% of expected)\n", bm.TeamStatus, bm.TeamSizeRatio*100)

	fmt.Fprintf(&b, "\nGaps (%d):\n", len(a.Gaps))
	if len(a.Gaps) == 0 {
		b.WriteString("  none\n")
	}
	for _, g := range a.Gaps {
		fmt.Fprintf(&b, "  %-9s %-20s %s\n", "["+string(g.Severity)+"]", g.Category, g.Description)
	}

	fmt.Fprintf(&b, "\nRisks (%d):\n", len(a.Risks))
	for _, r := range a.Risks {
		fmt.Fprintf(&b, "  %-3s %-9s %s\n", r.ID, r.Level, r.Risk)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "score: write table")
	}
	return nil
}

func writeBreakdown(w io.Writer, bd scorer.Breakdown) error {
	var b strings.Builder

	b.WriteString("\nBase scores:\n")
	for _, d := range model.Dimensions {
		fmt.Fprintf(&b, "  %-12s %4d -> %d\n", titleCase.String(string(d)), bd.Base[d], bd.Scores.Get(d))
	}

	fmt.Fprintf(&b, "\nAdjustments (%d):\n", len(bd.Adjustments))
	if len(bd.Adjustments) == 0 {
		b.WriteString("  none\n")
	}
	for _, adj := range bd.Adjustments {
		fmt.Fprintf(&b, "  %+4d %-12s %s\n", adj.Delta, adj.Dimension, adj.Key)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return eris.Wrap(err, "score: write breakdown")
	}
	return nil
}
