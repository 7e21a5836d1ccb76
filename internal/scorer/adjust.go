package scorer

import (
	"sort"
	"strings"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// condition reports whether an adjustment applies to a profile.
type condition func(p model.Profile) bool

// penaltyConditions holds the predicate for each penalty key that can fire.
// Catalog keys without an entry here never apply.
var penaltyConditions = map[string]condition{
	"no_mfa":                    func(p model.Profile) bool { return p.MFA == "none" },
	"mfa_optional":              func(p model.Profile) bool { return p.MFA == "optional" },
	"no_encryption_rest":        func(p model.Profile) bool { return p.DataEncryptionAtRest == "no" },
	"no_encryption_transit":     func(p model.Profile) bool { return p.DataEncryptionInTransit == "no" },
	"no_audit_logs":             func(p model.Profile) bool { return p.Logging == "none" },
	"no_siem":                   func(p model.Profile) bool { return p.SIEMDeployed == "no" },
	"no_vulnerability_scanning": func(p model.Profile) bool { return p.VulnerabilityScanning == "never" },
	"no_incident_response":      func(p model.Profile) bool { return p.IncidentResponsePlan == "no" },
	"no_backup":                 func(p model.Profile) bool { return p.BackupFrequency == "none" },
}

// bonusConditions holds the predicate for each bonus key that can fire.
var bonusConditions = map[string]condition{
	"soc2_certified":  func(p model.Profile) bool { return p.HasCertification("soc2") },
	"iso27001":        func(p model.Profile) bool { return p.HasCertification("iso27001") },
	"pci_compliant":   func(p model.Profile) bool { return p.HasCertification("pci_dss") },
	"hipaa_certified": func(p model.Profile) bool { return p.HasCertification("hipaa") },
	"penetration_tested": func(p model.Profile) bool {
		return p.VulnerabilityScanning == "quarterly" || p.VulnerabilityScanning == "monthly"
	},
	"security_training": func(p model.Profile) bool {
		return p.SecurityTrainingFrequency == "quarterly" || p.SecurityTrainingFrequency == "monthly"
	},
}

// penaltyRoutes assigns every penalty key in the built-in catalogs to the
// dimension it adjusts.
var penaltyRoutes = map[string]model.Dimension{
	"no_mfa":                    model.DimensionAccess,
	"mfa_optional":              model.DimensionAccess,
	"no_sso":                    model.DimensionAccess,
	"no_access_reviews":         model.DimensionAccess,
	"no_encryption_rest":        model.DimensionCompliance,
	"no_encryption_transit":     model.DimensionCompliance,
	"no_audit_logs":             model.DimensionCompliance,
	"no_pci_compliance":         model.DimensionCompliance,
	"no_siem":                   model.DimensionRisk,
	"no_vulnerability_scanning": model.DimensionRisk,
	"no_incident_response":      model.DimensionRisk,
	"no_backup":                 model.DimensionRisk,
	"no_penetration_testing":    model.DimensionGovernance,
	"no_baa":                    model.DimensionGovernance,
	"failed_hipaa_assessment":   model.DimensionGovernance,
	"no_monitoring":             model.DimensionGovernance,
	"no_waf":                    model.DimensionGovernance,
	"no_fraud_detection":        model.DimensionGovernance,
	"no_policies":               model.DimensionGovernance,
}

// bonusRoutes assigns every bonus key in the built-in catalogs to the
// dimension it adjusts.
var bonusRoutes = map[string]model.Dimension{
	"soc2_certified":     model.DimensionCompliance,
	"pci_compliant":      model.DimensionCompliance,
	"hipaa_certified":    model.DimensionCompliance,
	"hitech_compliant":   model.DimensionCompliance,
	"penetration_tested": model.DimensionRisk,
	"security_training":  model.DimensionGovernance,
	"iso27001":           model.DimensionAccess,
	"bug_bounty":         model.DimensionAccess,
	"regular_audits":     model.DimensionAccess,
	"uptime_99_9":        model.DimensionAccess,
	"fraud_prevention":   model.DimensionAccess,
	"regular_pentests":   model.DimensionAccess,
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// PenaltyDimension returns the dimension a penalty key adjusts. Keys missing
// from the route table are classified by keyword.
func PenaltyDimension(key string) model.Dimension {
	if d, ok := penaltyRoutes[key]; ok {
		return d
	}
	switch {
	case containsAny(key, "mfa", "access", "sso"):
		return model.DimensionAccess
	case containsAny(key, "compliance", "encryption", "audit"):
		return model.DimensionCompliance
	case containsAny(key, "backup", "incident", "siem", "vulnerability"):
		return model.DimensionRisk
	default:
		return model.DimensionGovernance
	}
}

// BonusDimension returns the dimension a bonus key adjusts. Keys missing
// from the route table are classified by keyword.
func BonusDimension(key string) model.Dimension {
	if d, ok := bonusRoutes[key]; ok {
		return d
	}
	switch {
	case containsAny(key, "certified", "compliant"):
		return model.DimensionCompliance
	case containsAny(key, "penetration", "vulnerability"):
		return model.DimensionRisk
	case containsAny(key, "training", "governance"):
		return model.DimensionGovernance
	default:
		return model.DimensionAccess
	}
}

// Adjustment is one penalty or bonus that fired for a profile.
type Adjustment struct {
	Key       string          `json:"key"`
	Delta     int             `json:"delta"`
	Dimension model.Dimension `json:"dimension"`
}

func collect(p model.Profile, catalog map[string]int, conds map[string]condition, route func(string) model.Dimension) []Adjustment {
	keys := make([]string, 0, len(catalog))
	for k := range catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Adjustment
	for _, k := range keys {
		cond, ok := conds[k]
		if !ok || !cond(p) {
			continue
		}
		out = append(out, Adjustment{Key: k, Delta: catalog[k], Dimension: route(k)})
	}
	return out
}

// Penalties returns the penalties from catalog that apply to p.
func Penalties(p model.Profile, catalog map[string]int) []Adjustment {
	return collect(p, catalog, penaltyConditions, PenaltyDimension)
}

// Bonuses returns the bonuses from catalog that apply to p.
func Bonuses(p model.Profile, catalog map[string]int) []Adjustment {
	return collect(p, catalog, bonusConditions, BonusDimension)
}

// raw holds unclamped per-dimension scores during adjustment.
type raw map[model.Dimension]int

func (r raw) apply(adjs []Adjustment) {
	for _, a := range adjs {
		r[a.Dimension] += a.Delta
	}
}
