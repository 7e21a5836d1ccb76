// Package scorer computes GRC maturity scores and control gaps from an
// assessment profile.
package scorer

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Engine scores profiles against a set of industry tables. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	tables *industry.Tables
}

// NewEngine returns an Engine backed by tables. A nil tables uses the
// built-in set.
func NewEngine(tables *industry.Tables) *Engine {
	if tables == nil {
		tables = industry.Builtin()
	}
	return &Engine{tables: tables}
}

var defaultEngine = NewEngine(nil)

// CalculateMaturityScore scores p with the built-in industry tables.
func CalculateMaturityScore(p model.Profile) model.DimensionScores {
	return defaultEngine.CalculateMaturityScore(p)
}

// IdentifyGaps detects gaps for p with the built-in industry tables.
func IdentifyGaps(p model.Profile, scores model.DimensionScores) []model.Gap {
	return defaultEngine.IdentifyGaps(p, scores)
}

// round rounds halves up.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Breakdown is a scoring result with the intermediate values that produced it.
type Breakdown struct {
	Base        map[model.Dimension]int `json:"base"`
	Adjustments []Adjustment            `json:"adjustments"`
	Scores      model.DimensionScores   `json:"scores"`
}

// Explain scores p and returns the base scores and fired adjustments
// alongside the final result.
func (e *Engine) Explain(p model.Profile) Breakdown {
	resolved, cfg := e.tables.Config(p.Industry)

	base := map[model.Dimension]int{
		model.DimensionGovernance: GovernanceScore(p),
		model.DimensionAccess:     AccessScore(p),
		model.DimensionRisk:       RiskScore(p),
		model.DimensionCompliance: ComplianceScore(p),
	}

	adjusted := raw{}
	for d, v := range base {
		adjusted[d] = v
	}

	adjs := Penalties(p, cfg.Penalties)
	adjs = append(adjs, Bonuses(p, cfg.Bonuses)...)
	adjusted.apply(adjs)

	scores := model.DimensionScores{
		Industry:   p.Industry,
		Resolved:   resolved,
		Thresholds: make(map[model.Dimension]model.DimensionWeight, len(cfg.Dimensions)),
	}
	for _, d := range model.Dimensions {
		scores.Set(d, clamp(adjusted[d]))
	}

	var overall float64
	for _, d := range model.Dimensions {
		dw, ok := cfg.Dimensions[d]
		if !ok {
			continue
		}
		scores.Thresholds[d] = dw
		overall += float64(scores.Get(d)) * dw.Weight
	}
	scores.Overall = clamp(round(overall))

	return Breakdown{Base: base, Adjustments: adjs, Scores: scores}
}

// CalculateMaturityScore returns the four adjusted dimension scores and the
// weighted overall score for p.
func (e *Engine) CalculateMaturityScore(p model.Profile) model.DimensionScores {
	return e.Explain(p).Scores
}

// IdentifyGaps returns threshold shortfalls in the industry's dimension order
// followed by fixed control gaps in rule order.
func (e *Engine) IdentifyGaps(p model.Profile, scores model.DimensionScores) []model.Gap {
	_, cfg := e.tables.Config(p.Industry)

	// Casers carry state and are not shared between goroutines.
	title := cases.Title(language.English)

	var gaps []model.Gap
	for _, d := range cfg.DimensionOrder() {
		dw, ok := cfg.Dimensions[d]
		if !ok || dw.Threshold <= 0 {
			continue
		}
		score := scores.Get(d)
		if score >= dw.Threshold {
			continue
		}

		severity := model.SeverityHigh
		if score < dw.Threshold-20 {
			severity = model.SeverityCritical
		}
		s, th := score, dw.Threshold
		gaps = append(gaps, model.Gap{
			Category:    title.String(string(d)),
			Description: fmt.Sprintf("%s score (%d%%) is below industry threshold (%d%%)", d, score, dw.Threshold),
			Severity:    severity,
			Score:       &s,
			Threshold:   &th,
		})
	}

	for _, rule := range controlGapRules {
		if rule.when(p) {
			gaps = append(gaps, rule.gap)
		}
	}
	return gaps
}

type controlGapRule struct {
	when condition
	gap  model.Gap
}

var controlGapRules = []controlGapRule{
	{
		when: func(p model.Profile) bool { return p.MFA == "none" || p.MFA == "optional" },
		gap: model.Gap{
			Category:      "Access Control",
			Description:   "Multi-Factor Authentication not enforced for all users",
			Severity:      model.SeverityCritical,
			SpecificIssue: "no_mfa",
		},
	},
	{
		when: func(p model.Profile) bool { return p.BackupFrequency == "none" },
		gap: model.Gap{
			Category:      "Risk Management",
			Description:   "No backup strategy in place - critical data loss risk",
			Severity:      model.SeverityCritical,
			SpecificIssue: "no_backup",
		},
	},
	{
		when: func(p model.Profile) bool {
			return p.DataEncryptionAtRest == "no" || p.DataEncryptionInTransit == "no"
		},
		gap: model.Gap{
			Category:      "Compliance",
			Description:   "Data encryption not implemented (required for most regulations)",
			Severity:      model.SeverityCritical,
			SpecificIssue: "no_encryption",
		},
	},
	{
		when: func(p model.Profile) bool { return p.IncidentResponsePlan == "no" },
		gap: model.Gap{
			Category:      "Risk Management",
			Description:   "No documented incident response plan",
			Severity:      model.SeverityHigh,
			SpecificIssue: "no_ir_plan",
		},
	},
	{
		when: func(p model.Profile) bool { return p.VulnerabilityScanning == "never" },
		gap: model.Gap{
			Category:      "Risk Management",
			Description:   "No vulnerability scanning program",
			Severity:      model.SeverityHigh,
			SpecificIssue: "no_vuln_scan",
		},
	},
	{
		when: func(p model.Profile) bool { return p.PoliciesDocumented == "none" },
		gap: model.Gap{
			Category:      "Governance",
			Description:   "Security policies not documented",
			Severity:      model.SeverityHigh,
			SpecificIssue: "no_policies",
		},
	},
	{
		when: func(p model.Profile) bool { return p.SecurityTeamSize == 0 && p.Employees > 50 },
		gap: model.Gap{
			Category:      "Governance",
			Description:   "No dedicated security personnel for company size",
			Severity:      model.SeverityHigh,
			SpecificIssue: "no_security_team",
		},
	},
}
