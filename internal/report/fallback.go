package report

import (
	"fmt"
	"strings"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// maxFallbackRecommendations caps recommendations derived from gaps.
const maxFallbackRecommendations = 10

func fallbackSummary(p model.Profile, scores model.DimensionScores, gaps []model.Gap) string {
	critical := model.CriticalGaps(gaps)
	actions := []string{
		"Improve overall security posture",
		"Enhance compliance documentation",
		"Implement missing technical controls",
	}
	for i := 0; i < len(actions) && i < len(critical); i++ {
		actions[i] = critical[i].Description
	}

	var b strings.Builder
	b.WriteString("# Executive Summary\n\n")
	fmt.Fprintf(&b, "%s has achieved an overall security maturity score of **%d%%** based on comprehensive assessment across governance, access control, risk management, and compliance dimensions.\n\n",
		p.DisplayName(), scores.Overall)
	b.WriteString("**Key Findings:**\n")
	fmt.Fprintf(&b, "- %d critical security gaps identified\n", len(critical))
	fmt.Fprintf(&b, "- Current maturity level: %s\n", scores.MaturityLevel())
	fmt.Fprintf(&b, "- Industry: %s\n", p.Industry)
	fmt.Fprintf(&b, "- Employee Count: %d\n\n", p.Employees)
	b.WriteString("**Priority Actions Required:**\n")
	for i, a := range actions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a)
	}
	return strings.TrimRight(b.String(), "\n")
}

func fallbackRecommendations(gaps []model.Gap) []model.Recommendation {
	n := min(len(gaps), maxFallbackRecommendations)
	out := make([]model.Recommendation, 0, n)
	for i, g := range gaps[:n] {
		out = append(out, model.Recommendation{
			ID:             i + 1,
			Title:          fmt.Sprintf("Address %s Gap", g.Category),
			Category:       g.Category,
			Priority:       string(g.Severity),
			BusinessImpact: g.Description,
			Steps:          []string{"Assess current state", "Design solution", "Implement controls", "Verify effectiveness"},
			EstimatedCost:  model.CostRange{Min: 5000, Max: 25000},
			Timeline:       "4-8 weeks",
			Resources:      model.Resources{People: "1 FTE for 4 weeks", Tools: "TBD based on specific solution"},
			SuccessMetrics: []string{"Gap closed", "Risk reduced"},
			QuickWins:      []string{},
		})
	}
	return out
}

func fallbackRoadmap(p model.Profile) string {
	frameworks := []string{
		"**ISO 27001** - Information Security Management System",
		fmt.Sprintf("**SOC 2 Type II** - Trust Service Criteria for %s", p.Industry),
	}
	if p.HasDataType("pii") {
		frameworks = append(frameworks, "**GDPR/CCPA** - Privacy regulations (REQUIRED)")
	}
	if p.HasDataType("financial") {
		frameworks = append(frameworks, "**PCI-DSS** - Payment Card Industry (REQUIRED)")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Compliance Roadmap for %s\n\n", p.DisplayName())
	fmt.Fprintf(&b, "Based on your industry (%s) and data types, the following compliance frameworks are recommended:\n\n", p.Industry)
	for i, f := range frameworks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f)
	}
	b.WriteString("\nContact a compliance consultant for detailed roadmap implementation.")
	return b.String()
}

// fallbackQuantifiedRisks lists every base risk with zero loss figures.
func fallbackQuantifiedRisks(risks []model.RiskScenario) []model.QuantifiedRisk {
	out := make([]model.QuantifiedRisk, len(risks))
	for i, r := range risks {
		out[i] = model.QuantifiedRisk{Risk: r.Risk}
	}
	return out
}
