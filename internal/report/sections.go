package report

import (
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

var titleCase = cases.Title(language.English)

// Framework statuses.
const (
	StatusCertified   = "Certified"
	StatusCompliant   = "Compliant"
	StatusRequired    = "REQUIRED"
	StatusHighlyRec   = "Highly Recommended"
	StatusRecommended = "Recommended Framework"
	StatusOptional    = "Optional"
	StatusNA          = "N/A"
)

// Governance lists the roles accountable for the security program.
func Governance(p model.Profile) model.GovernanceSection {
	security := model.Role{Title: "Security Officer", Description: "Responsible for security controls implementation."}
	if p.CISOPresent == "yes" {
		security = model.Role{Title: "CISO", Description: "Chief Information Security Officer leading security strategy."}
	}
	privacy := model.Role{Title: "Privacy Lead", Description: "Designated privacy point of contact."}
	if p.PrivacyOfficerAppointed == "yes" {
		privacy = model.Role{Title: "Data Protection Officer (DPO)", Description: "Ensures privacy compliance (GDPR/CCPA)."}
	}
	return model.GovernanceSection{Roles: []model.Role{
		{Title: "System Owner", Description: "Executive accountable for system operations and security."},
		security,
		privacy,
	}}
}

// Access summarizes the account population and the state of access controls.
func Access(p model.Profile) model.AccessSection {
	ratio := 0.0
	if p.Employees > 0 {
		ratio = float64(p.AdminCount) / float64(p.Employees) * 100
	}

	var mfa string
	switch p.MFA {
	case "mandatory":
		mfa = "Enforced (All Users)"
	case "required":
		mfa = "Partial (Admins Only)"
	default:
		mfa = "Not Enforced"
	}

	reviews := "Never"
	if p.AccountReviewFrequency != "never" && p.AccountReviewFrequency != "" {
		reviews = titleCase.String(p.AccountReviewFrequency)
	}

	return model.AccessSection{
		Stats: []model.Stat{
			{Label: "Total Users", Value: fmt.Sprint(p.Employees)},
			{Label: "Admin Accounts", Value: fmt.Sprint(p.AdminCount)},
			{Label: "Privileged Ratio", Value: fmt.Sprintf("%.0f%%", math.Round(ratio))},
			{Label: "Security Team", Value: fmt.Sprintf("%d FTE", p.SecurityTeamSize)},
		},
		Rules: []model.ControlRule{
			{Control: "MFA", Value: mfa},
			{Control: "SSO", Value: implemented(p.SSOImplemented)},
			{Control: "PAM", Value: implemented(p.PrivilegedAccessManagement)},
			{Control: "Session Timeout", Value: fmt.Sprintf("%d minutes", p.SessionTimeouts)},
			{Control: "Account Reviews", Value: reviews},
		},
	}
}

func implemented(v string) string {
	if v == "yes" {
		return "Implemented"
	}
	return "Not Implemented"
}

// PrivilegeMatrix is the reference role to permission mapping.
func PrivilegeMatrix() []model.PrivilegeEntry {
	return []model.PrivilegeEntry{
		{Role: "Super Admin", Permissions: "Full System Access (Read/Write/Delete/Config)"},
		{Role: "Security Admin", Permissions: "Security Tools, Logs, Audit (Read/Write)"},
		{Role: "Manager", Permissions: "Dept Data (Read/Write), User Mgmt (Dept only)"},
		{Role: "Standard User", Permissions: "Own Data (Read/Write), Public Data (Read)"},
		{Role: "Auditor", Permissions: "Logs & Reports (Read Only)"},
	}
}

// Compliance rates the applicability of common frameworks. HIPAA is listed
// only for healthcare organizations or those holding health data.
func Compliance(p model.Profile) []model.FrameworkStatus {
	held := p.HasCertification

	iso := StatusRecommended
	if held("iso27001") {
		iso = StatusCertified
	}

	privacy := StatusNA
	switch {
	case held("gdpr") || held("ccpa"):
		privacy = StatusCompliant
	case p.HasDataType("pii") || p.Region == "eu" || p.Region == "us":
		privacy = StatusRequired
	}

	pci := StatusNA
	switch {
	case held("pci_dss"):
		pci = StatusCompliant
	case p.HasDataType("financial"):
		pci = StatusRequired
	}

	soc2 := StatusOptional
	switch {
	case held("soc2"):
		soc2 = StatusCertified
	case p.Industry == "saas" || p.Industry == "fintech":
		soc2 = StatusHighlyRec
	}

	out := []model.FrameworkStatus{
		{Standard: "ISO 27001", Status: iso},
		{Standard: "GDPR/CCPA", Status: privacy},
		{Standard: "PCI-DSS", Status: pci},
		{Standard: "SOC 2", Status: soc2},
	}
	if p.Industry == "healthcare" || p.HasDataType("health") {
		hipaa := StatusRequired
		if held("hipaa") {
			hipaa = StatusCompliant
		}
		out = append(out, model.FrameworkStatus{Standard: "HIPAA", Status: hipaa})
	}
	return out
}

// Logging recommends log retention and review cadence.
func Logging(p model.Profile) model.LoggingSection {
	s := model.LoggingSection{
		Retention: "6 Months",
		Alerts:    "Basic error monitoring only",
		Frequency: "Monthly review",
	}
	if p.Logging == "advanced" {
		s.Retention = "12 Months (90 days hot, 9 months archive)"
		s.Frequency = "Daily automated analysis, Weekly manual review"
	}
	if p.SIEMDeployed == "yes" {
		s.Alerts = "Real-time SIEM alerts enabled"
	}
	return s
}
