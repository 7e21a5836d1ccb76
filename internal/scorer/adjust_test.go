package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// keywordPenalty is the substring classification used for keys outside the
// route table.
func keywordPenalty(key string) model.Dimension {
	switch {
	case containsAny(key, "mfa", "access", "sso"):
		return model.DimensionAccess
	case containsAny(key, "compliance", "encryption", "audit"):
		return model.DimensionCompliance
	case containsAny(key, "backup", "incident", "siem", "vulnerability"):
		return model.DimensionRisk
	}
	return model.DimensionGovernance
}

func keywordBonus(key string) model.Dimension {
	switch {
	case containsAny(key, "certified", "compliant"):
		return model.DimensionCompliance
	case containsAny(key, "penetration", "vulnerability"):
		return model.DimensionRisk
	case containsAny(key, "training", "governance"):
		return model.DimensionGovernance
	}
	return model.DimensionAccess
}

func TestRouteTablesCoverBuiltinCatalogs(t *testing.T) {
	for id, cfg := range industry.Builtin().Configs {
		for key := range cfg.Penalties {
			d, ok := penaltyRoutes[key]
			assert.True(t, ok, "%s penalty %s missing from route table", id, key)
			assert.Equal(t, keywordPenalty(key), d, "penalty %s", key)
		}
		for key := range cfg.Bonuses {
			d, ok := bonusRoutes[key]
			assert.True(t, ok, "%s bonus %s missing from route table", id, key)
			assert.Equal(t, keywordBonus(key), d, "bonus %s", key)
		}
	}
}

func TestPenaltyDimension(t *testing.T) {
	tests := []struct {
		key  string
		want model.Dimension
	}{
		{"no_mfa", model.DimensionAccess},
		{"no_access_reviews", model.DimensionAccess},
		{"no_audit_logs", model.DimensionCompliance},
		{"no_pci_compliance", model.DimensionCompliance},
		{"no_siem", model.DimensionRisk},
		{"failed_hipaa_assessment", model.DimensionGovernance},
		{"no_penetration_testing", model.DimensionGovernance},
		// Unknown keys use keyword classification.
		{"weak_sso_config", model.DimensionAccess},
		{"stale_backup_restore", model.DimensionRisk},
		{"no_board_oversight", model.DimensionGovernance},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, PenaltyDimension(tt.key))
		})
	}
}

func TestBonusDimension(t *testing.T) {
	tests := []struct {
		key  string
		want model.Dimension
	}{
		{"soc2_certified", model.DimensionCompliance},
		{"hitech_compliant", model.DimensionCompliance},
		{"penetration_tested", model.DimensionRisk},
		{"security_training", model.DimensionGovernance},
		{"iso27001", model.DimensionAccess},
		{"regular_pentests", model.DimensionAccess},
		{"uptime_99_9", model.DimensionAccess},
		{"continuous_vulnerability_program", model.DimensionRisk},
		{"governance_board", model.DimensionGovernance},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, BonusDimension(tt.key))
		})
	}
}

func TestPenaltiesOnlyFireWithPredicate(t *testing.T) {
	p := model.DefaultProfile()
	p.MFA = "none"
	p.SSOImplemented = "no"
	p.BackupFrequency = "none"

	_, cfg := industry.Builtin().Config("saas")
	adjs := Penalties(p, cfg.Penalties)

	var keys []string
	for _, a := range adjs {
		keys = append(keys, a.Key)
	}
	// no_sso and no_monitoring have no predicate.
	assert.Equal(t, []string{"no_backup", "no_incident_response", "no_mfa"}, keys)
	assert.Equal(t, model.DimensionRisk, adjs[0].Dimension)
	assert.Equal(t, -20, adjs[0].Delta)
	assert.Equal(t, model.DimensionAccess, adjs[2].Dimension)
}

func TestBonusPredicates(t *testing.T) {
	catalog := map[string]int{
		"soc2_certified":     1,
		"iso27001":           1,
		"pci_compliant":      1,
		"hipaa_certified":    1,
		"penetration_tested": 1,
		"security_training":  1,
		"bug_bounty":         1,
	}

	tests := []struct {
		name string
		p    model.Profile
		want []string
	}{
		{"nothing", model.Profile{}, nil},
		{
			"certifications",
			model.Profile{ExistingCertifications: []string{"soc2", "pci_dss", "hipaa", "iso27001"}},
			[]string{"hipaa_certified", "iso27001", "pci_compliant", "soc2_certified"},
		},
		{
			"monthly scanning and quarterly training",
			model.Profile{VulnerabilityScanning: "monthly", SecurityTrainingFrequency: "quarterly"},
			[]string{"penetration_tested", "security_training"},
		},
		{
			"continuous scanning is not a pentest",
			model.Profile{VulnerabilityScanning: "continuous", SecurityTrainingFrequency: "annual"},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, a := range Bonuses(tt.p, catalog) {
				got = append(got, a.Key)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPenaltyPredicates(t *testing.T) {
	p := model.Profile{
		MFA:                     "optional",
		DataEncryptionAtRest:    "no",
		DataEncryptionInTransit: "no",
		Logging:                 "none",
		SIEMDeployed:            "no",
		VulnerabilityScanning:   "never",
		IncidentResponsePlan:    "no",
		BackupFrequency:         "none",
	}
	catalog := make(map[string]int)
	for k := range penaltyConditions {
		catalog[k] = -1
	}

	var keys []string
	for _, a := range Penalties(p, catalog) {
		keys = append(keys, a.Key)
	}
	assert.NotContains(t, keys, "no_mfa")
	assert.Contains(t, keys, "mfa_optional")
	assert.Len(t, keys, len(penaltyConditions)-1)
	assert.True(t, strings.HasPrefix(strings.Join(keys, ","), "mfa_optional,no_audit_logs"))
}
