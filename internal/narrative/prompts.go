package narrative

import (
	"fmt"
	"strings"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Section names, also used as keys in model.Report.Narrative.
const (
	SectionExecutiveSummary  = "executive_summary"
	SectionRecommendations   = "recommendations"
	SectionComplianceRoadmap = "compliance_roadmap"
	SectionQuantifiedRisks   = "quantified_risks"
)

// Sections lists every narrative section in report order.
var Sections = []string{
	SectionExecutiveSummary,
	SectionRecommendations,
	SectionComplianceRoadmap,
	SectionQuantifiedRisks,
}

// revenuePerEmployee is the rough revenue assumption behind loss estimates.
const revenuePerEmployee = 150000

const systemPrompt = `You are a virtual CISO and GRC consultant preparing a security maturity assessment for an organization's leadership. Base every statement on the organization profile provided. Use specific numbers. Be direct and actionable and write in a professional consulting tone. When asked for JSON, return only JSON with no commentary.`

func list(xs []string, empty string) string {
	if len(xs) == 0 {
		return empty
	}
	return strings.Join(xs, ", ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// profileContext renders the organization facts shared by every section.
// It depends on the profile alone so it is byte-identical across a report.
func profileContext(p model.Profile) string {
	var b strings.Builder
	edr := "Not deployed"
	if p.AntivirusDeployed == "yes" {
		edr = orNA(p.EDRSolution)
	}

	b.WriteString("ORGANIZATION PROFILE\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.DisplayName())
	fmt.Fprintf(&b, "- Industry: %s\n", p.Industry)
	fmt.Fprintf(&b, "- Size: %d employees\n", p.Employees)
	fmt.Fprintf(&b, "- Region: %s\n", orNA(p.Region))
	fmt.Fprintf(&b, "- Business Model: %s\n", orNA(p.Model))

	b.WriteString("\nTECHNOLOGY\n")
	fmt.Fprintf(&b, "- Hosting: %s (%s)\n", orNA(p.Hosting), orNA(p.CloudProvider))
	fmt.Fprintf(&b, "- Applications: %d systems, %d web apps\n", p.ApplicationCount, p.WebApplications)
	fmt.Fprintf(&b, "- Database: %s (%d databases)\n", orNA(p.PrimaryDatabase), p.DatabaseCount)
	fmt.Fprintf(&b, "- Data Types: %s\n", list(p.DataTypes, "None specified"))
	fmt.Fprintf(&b, "- Data Volume: %s\n", orNA(p.DataVolume))

	b.WriteString("\nSECURITY POSTURE\n")
	fmt.Fprintf(&b, "- MFA: %s\n", orNA(p.MFA))
	fmt.Fprintf(&b, "- EDR/Antivirus: %s\n", edr)
	fmt.Fprintf(&b, "- SIEM: %s\n", orNA(p.SIEMDeployed))
	fmt.Fprintf(&b, "- Vulnerability Scanning: %s\n", orNA(p.VulnerabilityScanning))
	fmt.Fprintf(&b, "- Patching: %s\n", orNA(p.PatchingFrequency))
	fmt.Fprintf(&b, "- Backups: %s\n", orNA(p.BackupFrequency))
	fmt.Fprintf(&b, "- Incident Response Plan: %s\n", orNA(p.IncidentResponsePlan))
	fmt.Fprintf(&b, "- Security Team: %d FTE, Budget: $%.0f/year\n", p.SecurityTeamSize, p.SecurityBudget)
	fmt.Fprintf(&b, "- CISO: %s\n", orNA(p.CISOPresent))
	fmt.Fprintf(&b, "- Security Training: %s\n", orNA(p.SecurityTrainingFrequency))
	fmt.Fprintf(&b, "- Incidents Last Year: %g\n", p.SecurityIncidentsLastYear)
	fmt.Fprintf(&b, "- Data Breach History: %s\n", orNA(p.DataBreachHistory))

	b.WriteString("\nCOMPLIANCE\n")
	fmt.Fprintf(&b, "- Existing Certifications: %s\n", list(p.ExistingCertifications, "None"))
	fmt.Fprintf(&b, "- Regulatory Requirements: %s\n", list(p.RegulatoryRequirements, "Not specified"))
	fmt.Fprintf(&b, "- Policies Documented: %s\n", orNA(p.PoliciesDocumented))
	fmt.Fprintf(&b, "- Risk Tolerance: %s\n", orNA(p.RiskTolerance))
	fmt.Fprintf(&b, "- Audit Ready: %s\n", orNA(p.AuditReady))

	b.WriteString("\nBUSINESS CONTINUITY\n")
	fmt.Fprintf(&b, "- BCP Documented: %s\n", orNA(p.BCPDocumented))
	fmt.Fprintf(&b, "- RTO: %g hours, RPO: %g hours\n", p.RTO, p.RPO)
	fmt.Fprintf(&b, "- Redundancy: %s\n", orNA(p.RedundancyLevel))
	return b.String()
}

func executiveSummaryPrompt(p model.Profile, scores model.DimensionScores) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "The organization's security maturity score is %d%% (governance %d%%, access control %d%%, risk management %d%%, compliance %d%%).\n\n",
		scores.Overall, scores.Governance, scores.Access, scores.Risk, scores.Compliance)
	b.WriteString(`Write a board-ready executive summary of 3-4 paragraphs covering:
1. Current security posture (strengths and critical gaps)
2. Regulatory compliance status and obligations specific to the industry
3. Overall risk assessment and business impact
4. Top 3 priority recommendations with urgency level

Format as markdown starting with "# Executive Summary".`)

	return Prompt{
		Section:     SectionExecutiveSummary,
		System:      systemPrompt,
		Context:     profileContext(p),
		User:        b.String(),
		Temperature: 0.7,
		MaxTokens:   1500,
	}
}

func flag(cond bool, yes string) string {
	if cond {
		return yes
	}
	return "No"
}

func recommendationsPrompt(p model.Profile, gaps []model.Gap, scores model.DimensionScores) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Current maturity: %d%%.\n\nIDENTIFIED GAPS\n", scores.Overall)
	if len(gaps) == 0 {
		b.WriteString("- None identified\n")
	}
	for _, g := range gaps {
		fmt.Fprintf(&b, "- %s: %s (Severity: %s)\n", g.Category, g.Description, g.Severity)
	}

	b.WriteString("\nKEY FLAGS\n")
	fmt.Fprintf(&b, "- No MFA: %s\n", flag(p.MFA == "none" || p.MFA == "optional", "YES - CRITICAL"))
	fmt.Fprintf(&b, "- No SIEM: %s\n", flag(p.SIEMDeployed == "no", "YES"))
	fmt.Fprintf(&b, "- No Vulnerability Scanning: %s\n", flag(p.VulnerabilityScanning == "never", "YES - CRITICAL"))
	fmt.Fprintf(&b, "- No Incident Response Plan: %s\n", flag(p.IncidentResponsePlan == "no", "YES - CRITICAL"))
	fmt.Fprintf(&b, "- No Security Training: %s\n", flag(p.SecurityTrainingFrequency == "never", "YES"))
	fmt.Fprintf(&b, "- No Backups: %s\n", flag(p.BackupFrequency == "none", "YES - CRITICAL"))

	fmt.Fprintf(&b, `
Generate 15 prioritized recommendations for a %s company with %d employees, Critical first, then High, Medium, Low. Favor the highest ROI and quickest risk reduction.

Each recommendation has:
- id: sequential number starting at 1
- title: action-oriented, at most 80 characters
- category: one of "Access Control", "Risk Management", "Compliance", "Governance"
- priority: one of "Critical", "High", "Medium", "Low"
- businessImpact: 1-2 sentences on what happens if it is not implemented
- steps: 3-5 specific implementation steps with timelines
- estimatedCost: {"min": number, "max": number} in USD
- timeline: such as "4-6 weeks" or "2-3 months"
- resources: {"people": string, "tools": string}
- successMetrics: 2-3 measurable criteria
- quickWins: 0-2 immediate actions

Return ONLY a JSON object of the form {"recommendations": [ ... ]}.`, p.Industry, p.Employees)

	return Prompt{
		Section:     SectionRecommendations,
		System:      systemPrompt,
		Context:     profileContext(p),
		User:        b.String(),
		Temperature: 0.5,
		MaxTokens:   6000,
	}
}

func complianceRoadmapPrompt(p model.Profile) Prompt {
	user := fmt.Sprintf(`Generate a compliance roadmap for this %s organization in the %s region.

1. REQUIRED regulations for their industry and region: why each applies, the current gap, a realistic timeline in months, an estimated cost range, and the business benefit.
2. RECOMMENDED frameworks that are industry best practice, in the same format, focusing on competitive advantage.
3. A prioritized 12-month action plan: quick wins (0-3 months), medium-term goals (3-9 months), long-term goals (9-12 months).

Name actual regulations and their specific requirements. Format as markdown with headers, lists, and tables, starting with "# Compliance Roadmap".`,
		p.Industry, orNA(p.Region))

	return Prompt{
		Section:     SectionComplianceRoadmap,
		System:      systemPrompt,
		Context:     profileContext(p),
		User:        user,
		Temperature: 0.6,
		MaxTokens:   3000,
	}
}

func quantifyRisksPrompt(p model.Profile, risks []model.RiskScenario) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Revenue estimate: ~$%d (based on %d employees).\n\nRISK SCENARIOS\n",
		p.Employees*revenuePerEmployee, p.Employees)
	for _, r := range risks {
		fmt.Fprintf(&b, "- %s: %s impact, %s likelihood\n", r.Risk, r.Impact, r.Likelihood)
	}
	fmt.Fprintf(&b, `
For EACH risk scenario above, in the same order, calculate:
1. sle: Single Loss Expectancy in USD
2. aro: Annual Rate of Occurrence as a decimal between 0.01 and 1.0
3. ale: Annual Loss Expectancy (sle x aro)
4. mitigationCost: cost to implement controls in USD
5. roi: return on investment as a percentage

Reference points: average data breach cost $4.45M in healthcare, $3.9M in financial services, $2.5M elsewhere; average ransomware recovery $1.85M; downtime of critical systems $5,600 per minute. Be realistic for a %d-employee %s company.

Return ONLY a JSON array: [{"risk": string, "sle": number, "aro": number, "ale": number, "mitigationCost": number, "roi": number}]`,
		p.Employees, p.Industry)

	return Prompt{
		Section:     SectionQuantifiedRisks,
		System:      systemPrompt,
		Context:     profileContext(p),
		User:        b.String(),
		Temperature: 0.4,
		MaxTokens:   2000,
	}
}
