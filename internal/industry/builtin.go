package industry

import "github.com/abdallahossam66/GRC-PROJECT/internal/model"

func dims(gov, acc, risk, comp model.DimensionWeight) map[model.Dimension]model.DimensionWeight {
	return map[model.Dimension]model.DimensionWeight{
		model.DimensionGovernance: gov,
		model.DimensionAccess:     acc,
		model.DimensionRisk:       risk,
		model.DimensionCompliance: comp,
	}
}

func w(weight float64, threshold int) model.DimensionWeight {
	return model.DimensionWeight{Weight: weight, Threshold: threshold}
}

// Builtin returns the compiled-in industry tables. Each call returns a
// fresh copy so callers may merge overrides into it.
func Builtin() *Tables {
	return &Tables{
		Configs: map[string]Config{
			"fintech": {
				Dimensions: dims(w(0.10, 70), w(0.35, 85), w(0.15, 75), w(0.40, 90)),
				Order:      []model.Dimension{model.DimensionAccess, model.DimensionCompliance, model.DimensionRisk, model.DimensionGovernance},
				Penalties: map[string]int{
					"no_mfa":                    -30,
					"mfa_optional":              -20,
					"no_encryption_rest":        -25,
					"no_encryption_transit":     -20,
					"no_audit_logs":             -20,
					"no_siem":                   -15,
					"no_vulnerability_scanning": -15,
					"no_penetration_testing":    -10,
					"no_incident_response":      -20,
				},
				Bonuses: map[string]int{
					"soc2_certified":     15,
					"pci_compliant":      20,
					"iso27001":           15,
					"penetration_tested": 10,
					"bug_bounty":         5,
				},
			},
			"healthcare": {
				Dimensions: dims(w(0.10, 70), w(0.15, 80), w(0.30, 80), w(0.45, 95)),
				Order:      []model.Dimension{model.DimensionCompliance, model.DimensionRisk, model.DimensionAccess, model.DimensionGovernance},
				Penalties: map[string]int{
					"no_encryption_rest":      -40,
					"no_encryption_transit":   -40,
					"no_audit_logs":           -35,
					"no_mfa":                  -30,
					"no_baa":                  -30,
					"failed_hipaa_assessment": -50,
					"no_access_reviews":       -20,
					"no_incident_response":    -25,
				},
				Bonuses: map[string]int{
					"hipaa_certified":  25,
					"hitech_compliant": 15,
					"iso27001":         15,
					"regular_audits":   10,
				},
			},
			"saas": {
				Dimensions: dims(w(0.15, 0), w(0.30, 0), w(0.30, 0), w(0.25, 0)),
				Order:      []model.Dimension{model.DimensionAccess, model.DimensionRisk, model.DimensionCompliance, model.DimensionGovernance},
				Penalties: map[string]int{
					"no_mfa":               -25,
					"no_sso":               -15,
					"no_backup":            -20,
					"no_monitoring":        -15,
					"no_incident_response": -15,
				},
				Bonuses: map[string]int{
					"soc2_certified":    20,
					"iso27001":          15,
					"uptime_99_9":       10,
					"security_training": 5,
				},
			},
			"ecommerce": {
				Dimensions: dims(w(0.10, 70), w(0.30, 80), w(0.25, 75), w(0.35, 85)),
				Order:      []model.Dimension{model.DimensionCompliance, model.DimensionAccess, model.DimensionRisk, model.DimensionGovernance},
				Penalties: map[string]int{
					"no_pci_compliance":         -40,
					"no_waf":                    -25,
					"no_encryption_transit":     -30,
					"no_fraud_detection":        -20,
					"no_mfa":                    -20,
					"no_vulnerability_scanning": -20,
				},
				Bonuses: map[string]int{
					"pci_compliant":    25,
					"fraud_prevention": 15,
					"regular_pentests": 10,
					"bug_bounty":       10,
				},
			},
			Default: {
				Dimensions: dims(w(0.25, 0), w(0.25, 0), w(0.25, 0), w(0.25, 0)),
				Order:      []model.Dimension{model.DimensionGovernance, model.DimensionAccess, model.DimensionRisk, model.DimensionCompliance},
				Penalties: map[string]int{
					"no_mfa":               -20,
					"no_backup":            -15,
					"no_incident_response": -15,
					"no_policies":          -10,
				},
				Bonuses: map[string]int{
					"iso27001":          15,
					"security_training": 10,
					"regular_audits":    10,
				},
			},
		},
		Benchmarks: map[string]Benchmark{
			"fintech": {
				AverageScore:          72,
				Percentiles:           model.PercentileCurve{P10: 45, P25: 58, P50: 72, P75: 84, P90: 91},
				BudgetPerEmployee:     3700,
				AverageSecurityBudget: 185000,
				AverageTeamSize:       2.5,
				AverageIncidents:      3.2,
				Certifications:        []CertificationRate{{"soc2", 0.65}, {"iso27001", 0.40}, {"pci_dss", 0.55}},
				CommonGaps: []string{
					"Insufficient penetration testing frequency (should be quarterly)",
					"Lack of SOC 2 Type II certification",
					"Weak third-party vendor risk management",
					"Inadequate security awareness training",
					"No formal bug bounty program",
				},
			},
			"healthcare": {
				AverageScore:          68,
				Percentiles:           model.PercentileCurve{P10: 42, P25: 55, P50: 68, P75: 80, P90: 88},
				BudgetPerEmployee:     3300,
				AverageSecurityBudget: 165000,
				AverageTeamSize:       2,
				AverageIncidents:      4.1,
				Certifications:        []CertificationRate{{"hipaa", 0.75}, {"hitech", 0.60}, {"iso27001", 0.30}},
				CommonGaps: []string{
					"Incomplete HIPAA compliance documentation",
					"Lack of encryption for PHI at rest",
					"Insufficient Business Associate Agreements (BAAs)",
					"Inadequate access logging and monitoring",
					"No formal privacy impact assessments",
				},
			},
			"saas": {
				AverageScore:          70,
				Percentiles:           model.PercentileCurve{P10: 48, P25: 60, P50: 70, P75: 82, P90: 90},
				BudgetPerEmployee:     3000,
				AverageSecurityBudget: 150000,
				AverageTeamSize:       1.8,
				AverageIncidents:      2.8,
				Certifications:        []CertificationRate{{"soc2", 0.70}, {"iso27001", 0.45}, {"gdpr", 0.55}},
				CommonGaps: []string{
					"No SOC 2 certification (required by enterprise customers)",
					"Insufficient uptime monitoring and SLA enforcement",
					"Weak incident response capabilities",
					"No formal change management process",
					"Inadequate customer data encryption",
				},
			},
			"ecommerce": {
				AverageScore:          65,
				Percentiles:           model.PercentileCurve{P10: 40, P25: 52, P50: 65, P75: 78, P90: 86},
				BudgetPerEmployee:     2500,
				AverageSecurityBudget: 125000,
				AverageTeamSize:       1.5,
				AverageIncidents:      5.2,
				Certifications:        []CertificationRate{{"pci_dss", 0.60}, {"iso27001", 0.25}, {"soc2", 0.30}},
				CommonGaps: []string{
					"PCI-DSS compliance gaps",
					"No Web Application Firewall (WAF)",
					"Insufficient fraud detection mechanisms",
					"Weak customer data protection",
					"No formal vulnerability disclosure program",
				},
			},
			"manufacturing": {
				AverageScore:          58,
				Percentiles:           model.PercentileCurve{P10: 35, P25: 47, P50: 58, P75: 70, P90: 80},
				BudgetPerEmployee:     1900,
				AverageSecurityBudget: 95000,
				AverageTeamSize:       1,
				AverageIncidents:      2.5,
				Certifications:        []CertificationRate{{"iso27001", 0.35}, {"nist", 0.40}, {"iec62443", 0.15}},
				CommonGaps: []string{
					"Legacy OT/ICS systems with poor security",
					"Insufficient network segmentation (IT/OT)",
					"Weak supply chain security",
					"No industrial control system (ICS) security program",
					"Inadequate physical security integration",
				},
			},
			Default: {
				AverageScore:          62,
				Percentiles:           model.PercentileCurve{P10: 38, P25: 50, P50: 62, P75: 75, P90: 85},
				BudgetPerEmployee:     2000,
				AverageSecurityBudget: 100000,
				AverageTeamSize:       1,
				AverageIncidents:      3.0,
				Certifications:        []CertificationRate{{"iso27001", 0.25}, {"soc2", 0.20}},
				CommonGaps: []string{
					"Lack of formal security policies",
					"No dedicated security personnel",
					"Insufficient security training",
					"No incident response plan",
					"Weak access controls",
				},
			},
		},
	}
}
