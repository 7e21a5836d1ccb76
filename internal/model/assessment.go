package model

// Dimension names one of the four scored maturity dimensions.
type Dimension string

const (
	DimensionGovernance Dimension = "governance"
	DimensionAccess     Dimension = "access"
	DimensionRisk       Dimension = "risk"
	DimensionCompliance Dimension = "compliance"
)

// Dimensions lists every dimension in reporting order.
var Dimensions = []Dimension{
	DimensionGovernance,
	DimensionAccess,
	DimensionRisk,
	DimensionCompliance,
}

// Valid reports whether d is one of the four known dimensions.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionGovernance, DimensionAccess, DimensionRisk, DimensionCompliance:
		return true
	}
	return false
}

// DimensionWeight is an industry's weight and minimum acceptable score for
// one dimension. A zero Threshold means the industry sets no floor.
type DimensionWeight struct {
	Weight    float64 `json:"weight" yaml:"weight"`
	Threshold int     `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// DimensionScores is the result of scoring one profile.
type DimensionScores struct {
	Governance int                           `json:"governance" yaml:"governance"`
	Access     int                           `json:"access" yaml:"access"`
	Risk       int                           `json:"risk" yaml:"risk"`
	Compliance int                           `json:"compliance" yaml:"compliance"`
	Overall    int                           `json:"overall" yaml:"overall"`
	Industry   string                        `json:"industry" yaml:"industry"`
	Resolved   string                        `json:"resolvedIndustry" yaml:"resolvedIndustry"`
	Thresholds map[Dimension]DimensionWeight `json:"thresholds" yaml:"thresholds"`
}

// Get returns the score for d, or 0 for an unknown dimension.
func (s DimensionScores) Get(d Dimension) int {
	switch d {
	case DimensionGovernance:
		return s.Governance
	case DimensionAccess:
		return s.Access
	case DimensionRisk:
		return s.Risk
	case DimensionCompliance:
		return s.Compliance
	}
	return 0
}

// Set stores v as the score for d. Unknown dimensions are ignored.
func (s *DimensionScores) Set(d Dimension, v int) {
	switch d {
	case DimensionGovernance:
		s.Governance = v
	case DimensionAccess:
		s.Access = v
	case DimensionRisk:
		s.Risk = v
	case DimensionCompliance:
		s.Compliance = v
	}
}

// MaturityLevel buckets the overall score.
func (s DimensionScores) MaturityLevel() string {
	switch {
	case s.Overall >= 80:
		return "Strong"
	case s.Overall >= 60:
		return "Moderate"
	default:
		return "Developing"
	}
}

// Severity ranks a gap.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
)

// Gap is a single control shortfall.
type Gap struct {
	Category      string   `json:"category" yaml:"category"`
	Description   string   `json:"description" yaml:"description"`
	Severity      Severity `json:"severity" yaml:"severity"`
	Score         *int     `json:"score,omitempty" yaml:"score,omitempty"`
	Threshold     *int     `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	SpecificIssue string   `json:"specificIssue,omitempty" yaml:"specificIssue,omitempty"`
}

// CriticalGaps returns the Critical gaps preserving order.
func CriticalGaps(gaps []Gap) []Gap {
	var out []Gap
	for _, g := range gaps {
		if g.Severity == SeverityCritical {
			out = append(out, g)
		}
	}
	return out
}

// PercentileCurve holds an industry's score distribution cut points.
type PercentileCurve struct {
	P10 float64 `json:"p10" yaml:"p10"`
	P25 float64 `json:"p25" yaml:"p25"`
	P50 float64 `json:"p50" yaml:"p50"`
	P75 float64 `json:"p75" yaml:"p75"`
	P90 float64 `json:"p90" yaml:"p90"`
}

// CertificationGap flags a certification common in the industry but not held.
type CertificationGap struct {
	Certification string `json:"certification" yaml:"certification"`
	IndustryRate  string `json:"industryRate" yaml:"industryRate"`
	Message       string `json:"message" yaml:"message"`
}

// BenchmarkResult compares a profile against its industry benchmark.
type BenchmarkResult struct {
	YourScore       int     `json:"yourScore" yaml:"yourScore"`
	IndustryAverage float64 `json:"industryAverage" yaml:"industryAverage"`
	Percentile      int     `json:"percentile" yaml:"percentile"`
	PercentileLabel string  `json:"percentileLabel" yaml:"percentileLabel"`
	Comparison      string  `json:"comparison" yaml:"comparison"`
	ScoreDelta      float64 `json:"scoreDelta" yaml:"scoreDelta"`

	YourBudget     float64 `json:"yourBudget" yaml:"yourBudget"`
	ExpectedBudget float64 `json:"expectedBudget" yaml:"expectedBudget"`
	BudgetRatio    float64 `json:"budgetRatio" yaml:"budgetRatio"`
	BudgetStatus   string  `json:"budgetStatus" yaml:"budgetStatus"`

	YourTeamSize     float64 `json:"yourTeamSize" yaml:"yourTeamSize"`
	ExpectedTeamSize float64 `json:"expectedTeamSize" yaml:"expectedTeamSize"`
	TeamSizeRatio    float64 `json:"teamSizeRatio" yaml:"teamSizeRatio"`
	TeamStatus       string  `json:"teamStatus" yaml:"teamStatus"`

	YourIncidents            float64 `json:"yourIncidents" yaml:"yourIncidents"`
	IndustryAverageIncidents float64 `json:"industryAverageIncidents" yaml:"industryAverageIncidents"`
	IncidentStatus           string  `json:"incidentStatus" yaml:"incidentStatus"`

	CertificationGaps  []CertificationGap `json:"certificationGaps" yaml:"certificationGaps"`
	CommonIndustryGaps []string           `json:"commonIndustryGaps" yaml:"commonIndustryGaps"`
	Percentiles        PercentileCurve    `json:"percentiles" yaml:"percentiles"`
}

// RiskScenario is a qualitative risk derived from profile facts.
type RiskScenario struct {
	ID         string `json:"id" yaml:"id"`
	Risk       string `json:"risk" yaml:"risk"`
	Impact     string `json:"impact" yaml:"impact"`
	Likelihood string `json:"likelihood" yaml:"likelihood"`
	Level      string `json:"level" yaml:"level"`
	Mitigation string `json:"mitigation" yaml:"mitigation"`
}

// QuantifiedRisk attaches annual loss expectancy figures to a risk.
type QuantifiedRisk struct {
	Risk           string  `json:"risk" yaml:"risk"`
	SLE            float64 `json:"sle" yaml:"sle"`
	ARO            float64 `json:"aro" yaml:"aro"`
	ALE            float64 `json:"ale" yaml:"ale"`
	MitigationCost float64 `json:"mitigationCost" yaml:"mitigationCost"`
	ROI            float64 `json:"roi" yaml:"roi"`
}

// CostRange is an estimated USD range.
type CostRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Resources describes who and what a recommendation needs.
type Resources struct {
	People string `json:"people" yaml:"people"`
	Tools  string `json:"tools" yaml:"tools"`
}

// Recommendation is one remediation item.
type Recommendation struct {
	ID             int       `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	Category       string    `json:"category" yaml:"category"`
	Priority       string    `json:"priority" yaml:"priority"`
	BusinessImpact string    `json:"businessImpact" yaml:"businessImpact"`
	Steps          []string  `json:"steps" yaml:"steps"`
	EstimatedCost  CostRange `json:"estimatedCost" yaml:"estimatedCost"`
	Timeline       string    `json:"timeline" yaml:"timeline"`
	Resources      Resources `json:"resources" yaml:"resources"`
	SuccessMetrics []string  `json:"successMetrics" yaml:"successMetrics"`
	QuickWins      []string  `json:"quickWins" yaml:"quickWins"`
}
