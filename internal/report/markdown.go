package report

import (
	"fmt"
	"strings"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Markdown renders r as a markdown document.
func Markdown(r *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# GRC Maturity Report: %s\n", r.Company)
	fmt.Fprintf(&b, "Industry: %s\n", titleCase.String(r.Industry))
	fmt.Fprintf(&b, "Report ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	// Scores.
	m := r.Maturity
	b.WriteString("## Maturity\n")
	fmt.Fprintf(&b, "- Overall: %d%% (%s)\n", m.Overall, m.MaturityLevel())
	for _, d := range model.Dimensions {
		w := m.Thresholds[d]
		fmt.Fprintf(&b, "- %s: %d%% (weight %.0f%%, threshold %d%%)\n",
			titleCase.String(string(d)), m.Get(d), w.Weight*100, w.Threshold)
	}
	b.WriteString("\n")

	// Benchmark.
	bm := r.Benchmarks
	b.WriteString("## Industry Benchmark\n")
	fmt.Fprintf(&b, "- Industry average: %.0f%% (%+.0f)\n", bm.IndustryAverage, bm.ScoreDelta)
	fmt.Fprintf(&b, "- Percentile: %d (%s)\n", bm.Percentile, bm.PercentileLabel)
	fmt.Fprintf(&b, "- Comparison: %s\n", bm.Comparison)
	fmt.Fprintf(&b, "- Budget: $%.0f vs expected $%.0f (%s)\n", bm.YourBudget, bm.ExpectedBudget, bm.BudgetStatus)
	fmt.Fprintf(&b, "- Team: %.1f FTE vs expected %.1f (%s)\n", bm.YourTeamSize, bm.ExpectedTeamSize, bm.TeamStatus)
	fmt.Fprintf(&b, "- Incidents: %g vs average %g (%s)\n", bm.YourIncidents, bm.IndustryAverageIncidents, bm.IncidentStatus)
	for _, cg := range bm.CertificationGaps {
		fmt.Fprintf(&b, "- Certification gap: %s\n", cg.Message)
	}
	b.WriteString("\n")

	b.WriteString(strings.TrimSpace(r.ExecutiveSummary))
	b.WriteString("\n\n")

	// Gaps.
	b.WriteString("## Gaps\n")
	if len(r.Gaps) == 0 {
		b.WriteString("No gaps identified.\n")
	}
	for _, g := range r.Gaps {
		fmt.Fprintf(&b, "- **[%s] %s**: %s\n", g.Severity, g.Category, g.Description)
	}
	b.WriteString("\n")

	// Risks.
	b.WriteString("## Risk Register\n")
	b.WriteString("| ID | Risk | Impact | Likelihood | Level | Mitigation |\n")
	b.WriteString("|----|------|--------|------------|-------|------------|\n")
	for _, rk := range r.Risks {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", rk.ID, rk.Risk, rk.Impact, rk.Likelihood, rk.Level, rk.Mitigation)
	}
	b.WriteString("\n")

	if len(r.QuantifiedRisks) > 0 {
		b.WriteString("## Financial Exposure\n")
		b.WriteString("| Risk | SLE | ARO | ALE | Mitigation Cost | ROI |\n")
		b.WriteString("|------|-----|-----|-----|-----------------|-----|\n")
		for _, q := range r.QuantifiedRisks {
			fmt.Fprintf(&b, "| %s | $%.0f | %.2f | $%.0f | $%.0f | %.0f%% |\n", q.Risk, q.SLE, q.ARO, q.ALE, q.MitigationCost, q.ROI)
		}
		b.WriteString("\n")
	}

	// Recommendations.
	b.WriteString("## Recommendations\n")
	if len(r.Recommendations) == 0 {
		b.WriteString("No recommendations.\n")
	}
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "### %d. %s (%s)\n", rec.ID, rec.Title, rec.Priority)
		fmt.Fprintf(&b, "- Category: %s\n", rec.Category)
		if rec.BusinessImpact != "" {
			fmt.Fprintf(&b, "- Impact: %s\n", rec.BusinessImpact)
		}
		fmt.Fprintf(&b, "- Cost: $%.0f - $%.0f, timeline %s\n", rec.EstimatedCost.Min, rec.EstimatedCost.Max, rec.Timeline)
		for i, s := range rec.Steps {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}
	b.WriteString("\n")

	b.WriteString(strings.TrimSpace(r.ComplianceRoadmap))
	b.WriteString("\n\n")

	// Supporting sections.
	b.WriteString("## Governance\n")
	for _, role := range r.Governance.Roles {
		fmt.Fprintf(&b, "- **%s**: %s\n", role.Title, role.Description)
	}
	b.WriteString("\n## Access Control\n")
	for _, s := range r.Access.Stats {
		fmt.Fprintf(&b, "- %s: %s\n", s.Label, s.Value)
	}
	for _, rule := range r.Access.Rules {
		fmt.Fprintf(&b, "- %s: %s\n", rule.Control, rule.Value)
	}
	b.WriteString("\n## Privilege Matrix\n")
	for _, e := range r.Matrix {
		fmt.Fprintf(&b, "- %s: %s\n", e.Role, e.Permissions)
	}
	b.WriteString("\n## Compliance Frameworks\n")
	for _, f := range r.Compliance {
		fmt.Fprintf(&b, "- %s: %s\n", f.Standard, f.Status)
	}
	b.WriteString("\n## Logging\n")
	fmt.Fprintf(&b, "- Retention: %s\n", r.Logging.Retention)
	fmt.Fprintf(&b, "- Alerts: %s\n", r.Logging.Alerts)
	fmt.Fprintf(&b, "- Review: %s\n\n", r.Logging.Frequency)

	// Provenance.
	b.WriteString("## Generation\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "- %s: %s (%dms)\n", p.Name, p.Status, p.Duration)
		if origin, ok := r.Narrative[p.Name]; ok && origin.ErrorKind != "" {
			fmt.Fprintf(&b, "  Fallback: %s\n", origin.ErrorKind)
		}
	}
	fmt.Fprintf(&b, "- Token usage: %d input, %d output\n", r.Usage.InputTokens, r.Usage.OutputTokens)
	fmt.Fprintf(&b, "- Estimated cost: $%.4f\n", r.Usage.Cost)

	return b.String()
}
