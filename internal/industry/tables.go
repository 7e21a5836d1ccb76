// Package industry holds the per-industry scoring parameters and benchmark
// curves used by the maturity engine.
package industry

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Default is the fallback key used for unknown industries.
const Default = "default"

// Config is the scoring parameter set for one industry. Order lists the
// dimensions in the sequence threshold gaps are reported; when empty the
// reporting order of model.Dimensions applies.
type Config struct {
	Dimensions map[model.Dimension]model.DimensionWeight `json:"dimensions" yaml:"dimensions"`
	Order      []model.Dimension                         `json:"order,omitempty" yaml:"order"`
	Penalties  map[string]int                            `json:"penalties" yaml:"penalties"`
	Bonuses    map[string]int                            `json:"bonuses" yaml:"bonuses"`
}

// DimensionOrder returns the configured dimensions in gap reporting order.
func (c Config) DimensionOrder() []model.Dimension {
	if len(c.Order) > 0 {
		return c.Order
	}
	out := make([]model.Dimension, 0, len(c.Dimensions))
	for _, d := range model.Dimensions {
		if _, ok := c.Dimensions[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// CertificationRate is the share of an industry holding a certification.
type CertificationRate struct {
	ID   string  `json:"id" yaml:"id"`
	Rate float64 `json:"rate" yaml:"rate"`
}

// Benchmark is the static peer data for one industry.
type Benchmark struct {
	AverageScore          float64               `json:"averageMaturityScore" yaml:"average_score"`
	Percentiles           model.PercentileCurve `json:"percentiles" yaml:"percentiles"`
	BudgetPerEmployee     float64               `json:"budgetPerEmployee" yaml:"budget_per_employee"`
	AverageSecurityBudget float64               `json:"averageSecurityBudget" yaml:"average_security_budget"`
	AverageTeamSize       float64               `json:"averageTeamSize" yaml:"average_team_size"`
	AverageIncidents      float64               `json:"averageIncidentCount" yaml:"average_incidents"`
	Certifications        []CertificationRate   `json:"certifications" yaml:"certifications"`
	CommonGaps            []string              `json:"commonGaps" yaml:"common_gaps"`
}

// Tables is the full set of industry parameters. A loaded Tables value is
// never written again and may be shared across goroutines.
type Tables struct {
	Configs    map[string]Config    `json:"industries" yaml:"industries"`
	Benchmarks map[string]Benchmark `json:"benchmarks" yaml:"benchmarks"`
}

// Config returns the scoring config for id and the key it resolved to.
// Ids match exactly; anything unknown resolves to Default.
func (t *Tables) Config(id string) (string, Config) {
	if c, ok := t.Configs[id]; ok {
		return id, c
	}
	return Default, t.Configs[Default]
}

// Benchmark returns the benchmark for id and the key it resolved to.
// Ids match exactly; anything unknown resolves to Default.
func (t *Tables) Benchmark(id string) (string, Benchmark) {
	if b, ok := t.Benchmarks[id]; ok {
		return id, b
	}
	return Default, t.Benchmarks[Default]
}

// Industries returns every industry id known to either table, sorted.
func (t *Tables) Industries() []string {
	seen := make(map[string]bool)
	for k := range t.Configs {
		seen[k] = true
	}
	for k := range t.Benchmarks {
		seen[k] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge returns a new Tables holding t's entries overlaid with other's.
// Entries in other replace whole industries rather than individual keys.
func (t *Tables) Merge(other *Tables) *Tables {
	out := &Tables{
		Configs:    make(map[string]Config, len(t.Configs)),
		Benchmarks: make(map[string]Benchmark, len(t.Benchmarks)),
	}
	for k, v := range t.Configs {
		out.Configs[k] = v
	}
	for k, v := range t.Benchmarks {
		out.Benchmarks[k] = v
	}
	if other == nil {
		return out
	}
	for k, v := range other.Configs {
		out.Configs[k] = v
	}
	for k, v := range other.Benchmarks {
		out.Benchmarks[k] = v
	}
	return out
}

// Load returns the built-in tables, overlaid with the YAML file at path when
// path is non-empty. The result is validated before it is returned.
func Load(path string) (*Tables, error) {
	tables := Builtin()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "industry: read tables file %s", path)
	}

	var overrides Tables
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, eris.Wrapf(err, "industry: parse tables file %s", path)
	}

	merged := tables.Merge(&overrides)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	zap.L().Info("industry: loaded table overrides",
		zap.String("path", path),
		zap.Int("configs", len(overrides.Configs)),
		zap.Int("benchmarks", len(overrides.Benchmarks)),
	)
	return merged, nil
}

// Validate checks that every table entry is internally consistent.
func (t *Tables) Validate() error {
	var errs []string

	if _, ok := t.Configs[Default]; !ok {
		errs = append(errs, "industries.default is required")
	}
	if _, ok := t.Benchmarks[Default]; !ok {
		errs = append(errs, "benchmarks.default is required")
	}

	for _, id := range sortedKeys(t.Configs) {
		c := t.Configs[id]
		if len(c.Dimensions) == 0 {
			errs = append(errs, fmt.Sprintf("industries.%s: at least one dimension is required", id))
		}
		for d, dw := range c.Dimensions {
			if !d.Valid() {
				errs = append(errs, fmt.Sprintf("industries.%s: unknown dimension %q", id, d))
				continue
			}
			if dw.Weight <= 0 || dw.Weight > 1 {
				errs = append(errs, fmt.Sprintf("industries.%s.%s: weight must be in (0, 1]", id, d))
			}
			if dw.Threshold < 0 || dw.Threshold > 100 {
				errs = append(errs, fmt.Sprintf("industries.%s.%s: threshold must be between 0 and 100", id, d))
			}
		}
		if len(c.Order) > 0 && !sameDimensions(c.Order, c.Dimensions) {
			errs = append(errs, fmt.Sprintf("industries.%s: order must list each configured dimension once", id))
		}
		for k, v := range c.Penalties {
			if v > 0 {
				errs = append(errs, fmt.Sprintf("industries.%s: penalty %s must be <= 0", id, k))
			}
		}
		for k, v := range c.Bonuses {
			if v < 0 {
				errs = append(errs, fmt.Sprintf("industries.%s: bonus %s must be >= 0", id, k))
			}
		}
	}

	for _, id := range sortedKeys(t.Benchmarks) {
		b := t.Benchmarks[id]
		p := b.Percentiles
		if !(p.P10 < p.P25 && p.P25 < p.P50 && p.P50 < p.P75 && p.P75 < p.P90 && p.P90 < 100) {
			errs = append(errs, fmt.Sprintf("benchmarks.%s: percentiles must be strictly increasing and below 100", id))
		}
		if p.P10 <= 0 {
			errs = append(errs, fmt.Sprintf("benchmarks.%s: p10 must be > 0", id))
		}
		if b.BudgetPerEmployee < 0 || b.AverageTeamSize < 0 || b.AverageIncidents < 0 {
			errs = append(errs, fmt.Sprintf("benchmarks.%s: averages must be >= 0", id))
		}
		for _, cr := range b.Certifications {
			if cr.Rate < 0 || cr.Rate > 1 {
				errs = append(errs, fmt.Sprintf("benchmarks.%s: certification rate %s must be between 0 and 1", id, cr.ID))
			}
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return eris.Errorf("industry: tables validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func sameDimensions(order []model.Dimension, dims map[model.Dimension]model.DimensionWeight) bool {
	if len(order) != len(dims) {
		return false
	}
	seen := make(map[model.Dimension]bool, len(order))
	for _, d := range order {
		if _, ok := dims[d]; !ok || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
