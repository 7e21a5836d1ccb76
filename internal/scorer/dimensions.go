package scorer

import "github.com/abdallahossam66/GRC-PROJECT/internal/model"

// baseScore is the starting point of every dimension scorer.
const baseScore = 50

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// tier returns the points for value, or fallback when value is not listed.
func tier(value string, points map[string]int, fallback int) int {
	if p, ok := points[value]; ok {
		return p
	}
	return fallback
}

func yes(v string) bool { return v == "yes" }

// GovernanceScore rates organizational structure, policy, and leadership.
func GovernanceScore(p model.Profile) int {
	score := baseScore

	if p.Size == "51-200" || p.Size == "200+" {
		score += 10
	}
	if p.Departments >= 3 {
		score += 5
	}
	if p.Departments >= 5 {
		score += 5
	}
	if p.OutsourcedIT == "no" {
		score += 10
	}

	score += tier(p.PoliciesDocumented, map[string]int{"complete": 15, "partial": 7}, -10)
	score += tier(p.PolicyReviewFrequency, map[string]int{"quarterly": 10, "semi_annual": 7, "annual": 5}, 0)

	if yes(p.CISOPresent) {
		score += 15
	}
	switch {
	case p.SecurityTeamSize >= 2:
		score += 10
	case p.SecurityTeamSize == 1:
		score += 5
	default:
		score -= 5
	}
	if yes(p.PrivacyOfficerAppointed) {
		score += 5
	}

	return clamp(score)
}

// AdminRatio is the share of accounts with admin rights. Zero employees
// yields 0.
func AdminRatio(p model.Profile) float64 {
	if p.Employees <= 0 {
		return 0
	}
	return float64(p.AdminCount) / float64(p.Employees)
}

// AccessScore rates identity and access management.
func AccessScore(p model.Profile) int {
	score := baseScore

	score += tier(p.MFA, map[string]int{"mandatory": 30, "required": 15, "optional": 5}, -20)
	score += tier(p.Password, map[string]int{"passphrase": 12, "strong": 10, "basic": 3}, 0)

	if yes(p.SSOImplemented) {
		score += 10
	}
	if yes(p.PrivilegedAccessManagement) {
		score += 10
	}

	switch ratio := AdminRatio(p); {
	case ratio <= 0.05:
		score += 15
	case ratio <= 0.10:
		score += 10
	case ratio <= 0.15:
		score += 5
	default:
		score -= 10
	}

	score += tier(p.AccountReviewFrequency, map[string]int{"quarterly": 10, "semi_annual": 7, "annual": 5}, 0)

	switch {
	case p.SessionTimeouts <= 30:
		score += 5
	case p.SessionTimeouts <= 60:
		score += 3
	}

	return clamp(score)
}

// RiskScore rates detection, response, and recovery capability.
func RiskScore(p model.Profile) int {
	score := baseScore

	score += tier(p.Logging, map[string]int{"advanced": 20, "basic": 8}, -10)
	if yes(p.SIEMDeployed) {
		score += 15
	}
	score += tier(p.VulnerabilityScanning, map[string]int{
		"continuous": 20,
		"weekly":     15,
		"monthly":    10,
		"quarterly":  5,
	}, -15)
	score += tier(p.PatchingFrequency, map[string]int{"weekly": 15, "monthly": 10, "quarterly": 5}, 0)

	if yes(p.AntivirusDeployed) {
		score += 10
	}
	if yes(p.IncidentResponsePlan) {
		score += 15
	}
	if yes(p.IncidentResponseTested) {
		score += 10
	}

	score += tier(p.BackupFrequency, map[string]int{"real_time": 15, "daily": 12, "weekly": 7}, -20)
	score += tier(p.BackupTesting, map[string]int{"quarterly": 10, "semi_annual": 7, "annual": 5}, 0)

	if yes(p.CyberInsurance) {
		score += 5
	}
	score += tier(p.RiskTolerance, map[string]int{"low": 10, "high": -5}, 0)

	return clamp(score)
}

// certificationPoints are the compliance points per held certification.
var certificationPoints = []struct {
	id     string
	points int
}{
	{"iso27001", 20},
	{"soc2", 20},
	{"pci_dss", 15},
	{"hipaa", 15},
	{"gdpr", 10},
}

// ComplianceScore rates certifications, audit posture, and data protection.
func ComplianceScore(p model.Profile) int {
	score := baseScore

	for _, c := range certificationPoints {
		if p.HasCertification(c.id) {
			score += c.points
		}
	}

	score += tier(p.PoliciesDocumented, map[string]int{"complete": 15, "partial": 7}, -15)

	if yes(p.AuditReady) {
		score += 15
	}
	if p.LastAuditDate != "" {
		switch {
		case p.AuditFindings <= 5:
			score += 10
		case p.AuditFindings <= 15:
			score += 5
		}
	}

	if yes(p.DataMappingCompleted) {
		score += 10
	}
	if yes(p.PrivacyImpactAssessments) {
		score += 8
	}
	if yes(p.CloudDataClassification) {
		score += 7
	}

	if yes(p.DataEncryptionAtRest) {
		score += 10
	} else {
		score -= 15
	}
	if yes(p.DataEncryptionInTransit) {
		score += 10
	} else {
		score -= 15
	}

	if yes(p.VendorRiskAssessments) {
		score += 10
	}

	return clamp(score)
}
