package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileHelpers(t *testing.T) {
	p := Profile{
		ExistingCertifications: []string{"soc2", "iso27001"},
		DataTypes:              []string{"financial"},
	}

	assert.True(t, p.HasCertification("soc2"))
	assert.False(t, p.HasCertification("hipaa"))
	assert.True(t, p.HasDataType("financial"))
	assert.False(t, p.HasDataType("pii"))
	assert.True(t, p.HandlesSensitiveData())

	var empty Profile
	assert.False(t, empty.HasCertification("soc2"))
	assert.False(t, empty.HandlesSensitiveData())
	assert.Equal(t, "Organization", empty.DisplayName())
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.Equal(t, "saas", p.Industry)
	assert.Equal(t, 25, p.Employees)
	assert.Equal(t, "mandatory", p.MFA)
	assert.Equal(t, "never", p.VulnerabilityScanning)
	assert.NotNil(t, p.DataTypes)
	assert.Empty(t, p.ExistingCertifications)
}

func TestDimensionScoresGetSet(t *testing.T) {
	var s DimensionScores
	for i, d := range Dimensions {
		s.Set(d, (i+1)*10)
	}
	assert.Equal(t, 10, s.Governance)
	assert.Equal(t, 20, s.Get(DimensionAccess))
	assert.Equal(t, 30, s.Get(DimensionRisk))
	assert.Equal(t, 40, s.Compliance)
	assert.Equal(t, 0, s.Get(Dimension("budget")))

	s.Set(Dimension("budget"), 99)
	assert.Equal(t, 40, s.Compliance)
}

func TestDimensionValid(t *testing.T) {
	assert.True(t, DimensionRisk.Valid())
	assert.False(t, Dimension("privacy").Valid())
}

func TestMaturityLevel(t *testing.T) {
	tests := []struct {
		overall int
		want    string
	}{
		{95, "Strong"},
		{80, "Strong"},
		{79, "Moderate"},
		{60, "Moderate"},
		{59, "Developing"},
		{0, "Developing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DimensionScores{Overall: tt.overall}.MaturityLevel())
	}
}

func TestCriticalGaps(t *testing.T) {
	gaps := []Gap{
		{Category: "Governance", Severity: SeverityHigh},
		{Category: "Access Control", Severity: SeverityCritical},
		{Category: "Compliance", Severity: SeverityCritical},
	}
	crit := CriticalGaps(gaps)
	assert.Len(t, crit, 2)
	assert.Equal(t, "Access Control", crit[0].Category)
	assert.Empty(t, CriticalGaps(nil))
}

func TestTokenUsageAdd(t *testing.T) {
	u := TokenUsage{InputTokens: 10, OutputTokens: 5, Cost: 0.5}
	u.Add(TokenUsage{InputTokens: 1, OutputTokens: 2, Cost: 0.25})
	assert.Equal(t, int64(11), u.InputTokens)
	assert.Equal(t, int64(7), u.OutputTokens)
	assert.InDelta(t, 0.75, u.Cost, 0.0001)
}
