// Package benchmark compares a maturity score and resourcing figures with
// industry peers.
package benchmark

import (
	"fmt"
	"math"
	"strings"

	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Comparator produces benchmark comparisons from a set of industry tables.
type Comparator struct {
	tables *industry.Tables
}

// NewComparator returns a Comparator backed by tables. A nil tables uses the
// built-in set.
func NewComparator(tables *industry.Tables) *Comparator {
	if tables == nil {
		tables = industry.Builtin()
	}
	return &Comparator{tables: tables}
}

var defaultComparator = NewComparator(nil)

// GetBenchmarkComparison compares p with its industry using the built-in tables.
func GetBenchmarkComparison(p model.Profile, overall int) model.BenchmarkResult {
	return defaultComparator.Compare(p, overall)
}

func round(v float64) float64 {
	return math.Floor(v + 0.5)
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// band interpolates v from [lo, hi] onto [floor, floor+width]. A zero-width
// band maps to its floor.
func band(v, lo, hi, floor, width float64) float64 {
	if hi <= lo {
		return floor
	}
	return floor + (v-lo)/(hi-lo)*width
}

// Percentile maps score onto the 0-100 percentile scale of curve by linear
// interpolation between the curve's cut points.
func Percentile(score float64, curve model.PercentileCurve) float64 {
	switch {
	case score >= curve.P90:
		return band(score, curve.P90, 100, 90, 10)
	case score >= curve.P75:
		return band(score, curve.P75, curve.P90, 75, 15)
	case score >= curve.P50:
		return band(score, curve.P50, curve.P75, 50, 25)
	case score >= curve.P25:
		return band(score, curve.P25, curve.P50, 25, 25)
	case score >= curve.P10:
		return band(score, curve.P10, curve.P25, 10, 15)
	default:
		return band(score, 0, curve.P10, 0, 10)
	}
}

// PercentileLabel describes where a percentile sits.
func PercentileLabel(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent (Top 10%)"
	case pct >= 75:
		return "Good (Top 25%)"
	case pct >= 50:
		return "Average (Top 50%)"
	case pct >= 25:
		return "Below Average (Bottom 50%)"
	default:
		return "Poor (Bottom 25%)"
	}
}

func ratio(have, want float64) float64 {
	if have <= 0 || want <= 0 {
		return 0
	}
	return have / want
}

func budgetStatus(r float64) string {
	switch {
	case r >= 1:
		return "Adequate"
	case r >= 0.7:
		return "Underfunded"
	default:
		return "Severely Underfunded"
	}
}

func teamStatus(r float64) string {
	switch {
	case r >= 1:
		return "Adequate"
	case r >= 0.5:
		return "Understaffed"
	default:
		return "Severely Understaffed"
	}
}

// Compare benchmarks p, whose overall maturity score is overall, against
// its industry.
func (c *Comparator) Compare(p model.Profile, overall int) model.BenchmarkResult {
	_, b := c.tables.Benchmark(p.Industry)
	score := float64(overall)

	pct := Percentile(score, b.Percentiles)

	comparison := fmt.Sprintf("Below average (bottom %d%%)", int(round(pct)))
	if score > b.AverageScore {
		comparison = fmt.Sprintf("Above average (top %d%%)", int(round(100-pct)))
	}

	expectedBudget := float64(p.Employees) * b.BudgetPerEmployee
	budgetRatio := ratio(p.SecurityBudget, expectedBudget)

	expectedTeam := float64(p.Employees) / 50 * b.AverageTeamSize
	teamRatio := ratio(float64(p.SecurityTeamSize), expectedTeam)

	incidentStatus := "Worse than average"
	if p.SecurityIncidentsLastYear <= b.AverageIncidents {
		incidentStatus = "Better than average"
	}

	return model.BenchmarkResult{
		YourScore:       overall,
		IndustryAverage: b.AverageScore,
		Percentile:      int(round(pct)),
		PercentileLabel: PercentileLabel(pct),
		Comparison:      comparison,
		ScoreDelta:      score - b.AverageScore,

		YourBudget:     p.SecurityBudget,
		ExpectedBudget: round(expectedBudget),
		BudgetRatio:    budgetRatio,
		BudgetStatus:   budgetStatus(budgetRatio),

		YourTeamSize:     float64(p.SecurityTeamSize),
		ExpectedTeamSize: round1(expectedTeam),
		TeamSizeRatio:    teamRatio,
		TeamStatus:       teamStatus(teamRatio),

		YourIncidents:            p.SecurityIncidentsLastYear,
		IndustryAverageIncidents: b.AverageIncidents,
		IncidentStatus:           incidentStatus,

		CertificationGaps:  certificationGaps(p, b),
		CommonIndustryGaps: append([]string(nil), b.CommonGaps...),
		Percentiles:        b.Percentiles,
	}
}

// certificationGaps lists certifications held by at least half of the
// industry that p does not hold, in table order.
func certificationGaps(p model.Profile, b industry.Benchmark) []model.CertificationGap {
	gaps := []model.CertificationGap{}
	for _, cr := range b.Certifications {
		if cr.Rate < 0.5 || p.HasCertification(cr.ID) {
			continue
		}
		pct := int(round(cr.Rate * 100))
		name := strings.ToUpper(cr.ID)
		gaps = append(gaps, model.CertificationGap{
			Certification: name,
			IndustryRate:  fmt.Sprintf("%d%%", pct),
			Message:       fmt.Sprintf("%d%% of %s companies have %s", pct, p.Industry, name),
		})
	}
	return gaps
}
