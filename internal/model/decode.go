package model

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ProfileFormatFor picks "yaml" or "json" from a file name.
func ProfileFormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// DecodeProfile parses a profile in the given format ("json" or "yaml") and
// validates it. Unknown fields are rejected so misspelled answers surface.
func DecodeProfile(data []byte, format string) (Profile, error) {
	var p Profile
	if len(bytes.TrimSpace(data)) == 0 {
		return p, eris.New("model: empty profile")
	}

	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return p, eris.Wrap(err, "model: decode yaml profile")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return p, eris.Wrap(err, "model: decode json profile")
		}
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate rejects answers no questionnaire could produce.
func (p Profile) Validate() error {
	counts := []struct {
		name string
		v    float64
	}{
		{"employees", float64(p.Employees)},
		{"adminCount", float64(p.AdminCount)},
		{"securityTeamSize", float64(p.SecurityTeamSize)},
		{"securityBudget", p.SecurityBudget},
		{"securityIncidentsLastYear", p.SecurityIncidentsLastYear},
		{"criticalVendorCount", float64(p.CriticalVendorCount)},
		{"sessionTimeouts", float64(p.SessionTimeouts)},
		{"rto", p.RTO},
		{"rpo", p.RPO},
	}
	var bad []string
	for _, c := range counts {
		if c.v < 0 {
			bad = append(bad, c.name)
		}
	}
	if len(bad) > 0 {
		return eris.Errorf("model: negative values for %s", strings.Join(bad, ", "))
	}
	return nil
}
