// Package risk builds the qualitative risk register for an assessment profile.
package risk

import (
	"fmt"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Qualitative ratings.
const (
	Low      = "Low"
	Medium   = "Medium"
	High     = "High"
	Critical = "Critical"
)

// rule emits a scenario when applies reports true. build fills in everything
// except the ID.
type rule struct {
	name    string
	applies func(p model.Profile) bool
	build   func(p model.Profile) model.RiskScenario
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

var rules = []rule{
	{
		name:    "remote_endpoint",
		applies: func(p model.Profile) bool { return p.Remote == "yes" },
		build: func(p model.Profile) model.RiskScenario {
			mfa := p.MFA == "mandatory"
			return model.RiskScenario{
				Risk:       "Remote Endpoint Compromise",
				Impact:     High,
				Likelihood: pick(mfa, Low, High),
				Level:      pick(mfa, Medium, High),
				Mitigation: "Enforce Endpoint Encryption, VPN, and Mandatory MFA",
			}
		},
	},
	{
		name:    "cloud_misconfiguration",
		applies: func(p model.Profile) bool { return p.Hosting == "cloud" },
		build: func(p model.Profile) model.RiskScenario {
			return model.RiskScenario{
				Risk:       "Cloud Misconfiguration",
				Impact:     Critical,
				Likelihood: pick(p.CloudDataClassification == "yes", Low, Medium),
				Level:      High,
				Mitigation: "Enable Cloud Security Posture Management (CSPM), Regular Audits",
			}
		},
	},
	{
		name: "supply_chain",
		applies: func(p model.Profile) bool {
			return p.Vendors == "yes" || p.CriticalVendorCount > 0
		},
		build: func(p model.Profile) model.RiskScenario {
			assessed := p.VendorRiskAssessments == "yes"
			return model.RiskScenario{
				Risk:       "Supply Chain / Third-Party Breach",
				Impact:     High,
				Likelihood: pick(assessed, Low, High),
				Level:      pick(assessed, Medium, High),
				Mitigation: "Vendor Risk Assessment Program, Least Privilege Access, SLAs",
			}
		},
	},
	{
		name:    "data_breach",
		applies: model.Profile.HandlesSensitiveData,
		build: func(p model.Profile) model.RiskScenario {
			encrypted := p.DataEncryptionAtRest == "yes" && p.DataEncryptionInTransit == "yes"
			return model.RiskScenario{
				Risk:       "Data Breach / Leakage",
				Impact:     Critical,
				Likelihood: pick(encrypted, Low, Medium),
				Level:      High,
				Mitigation: "Data Loss Prevention (DLP), Encryption at Rest/Transit, Access Logging",
			}
		},
	},
	{
		name:    "ransomware",
		applies: func(p model.Profile) bool { return p.BackupFrequency == "none" },
		build: func(model.Profile) model.RiskScenario {
			return model.RiskScenario{
				Risk:       "Ransomware Attack with Data Loss",
				Impact:     Critical,
				Likelihood: High,
				Level:      Critical,
				Mitigation: "Implement Backup Strategy, Offline Backups, Incident Response Plan",
			}
		},
	},
	{
		name:    "insider_threat",
		applies: func(model.Profile) bool { return true },
		build: func(p model.Profile) model.RiskScenario {
			return model.RiskScenario{
				Risk:       "Insider Threat / Privilege Abuse",
				Impact:     Medium,
				Likelihood: pick(p.PrivilegedAccessManagement == "yes", Low, Medium),
				Level:      Medium,
				Mitigation: "Role-Based Access Control (RBAC), Privileged Access Management, Audit Logging",
			}
		},
	},
}

// GenerateBaseRisks evaluates the rule list against p. IDs run R1..Rn in
// emission order and the insider threat scenario is always last.
func GenerateBaseRisks(p model.Profile) []model.RiskScenario {
	out := make([]model.RiskScenario, 0, len(rules))
	for _, r := range rules {
		if !r.applies(p) {
			continue
		}
		s := r.build(p)
		s.ID = fmt.Sprintf("R%d", len(out)+1)
		out = append(out, s)
	}
	return out
}
