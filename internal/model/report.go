package model

import "time"

// PhaseStatus is the outcome of one report generation phase.
type PhaseStatus string

const (
	PhaseStatusComplete PhaseStatus = "complete"
	PhaseStatusFallback PhaseStatus = "fallback"
	PhaseStatusSkipped  PhaseStatus = "skipped"
)

// PhaseResult records timing and outcome for a report phase.
type PhaseResult struct {
	Name     string      `json:"name" yaml:"name"`
	Status   PhaseStatus `json:"status" yaml:"status"`
	Duration int64       `json:"duration_ms" yaml:"duration_ms"`
	Error    string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// NarrativeSource says where a narrative piece came from.
type NarrativeSource string

const (
	SourceLLM      NarrativeSource = "llm"
	SourceFallback NarrativeSource = "fallback"
)

// NarrativeOrigin records the provenance of one narrative piece.
type NarrativeOrigin struct {
	Source    NarrativeSource `json:"source" yaml:"source"`
	ErrorKind string          `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
}

// TokenUsage aggregates LLM token consumption for a report.
type TokenUsage struct {
	InputTokens  int64   `json:"input_tokens" yaml:"input_tokens"`
	OutputTokens int64   `json:"output_tokens" yaml:"output_tokens"`
	Cost         float64 `json:"cost_usd" yaml:"cost_usd"`
}

// Add accumulates other into u.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.Cost += other.Cost
}

// Role is a governance role entry.
type Role struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// GovernanceSection lists the accountable security roles.
type GovernanceSection struct {
	Roles []Role `json:"roles" yaml:"roles"`
}

// Stat is a labelled figure.
type Stat struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// ControlRule describes the state of one access control.
type ControlRule struct {
	Control string `json:"control" yaml:"control"`
	Value   string `json:"value" yaml:"value"`
}

// AccessSection summarizes account population and access controls.
type AccessSection struct {
	Stats []Stat        `json:"stats" yaml:"stats"`
	Rules []ControlRule `json:"rules" yaml:"rules"`
}

// PrivilegeEntry is one row of the privilege matrix.
type PrivilegeEntry struct {
	Role        string `json:"role" yaml:"role"`
	Permissions string `json:"permissions" yaml:"permissions"`
}

// FrameworkStatus is the applicability of one compliance framework.
type FrameworkStatus struct {
	Standard string `json:"standard" yaml:"standard"`
	Status   string `json:"status" yaml:"status"`
}

// LoggingSection describes the recommended log handling regime.
type LoggingSection struct {
	Retention string `json:"retention" yaml:"retention"`
	Alerts    string `json:"alerts" yaml:"alerts"`
	Frequency string `json:"frequency" yaml:"frequency"`
}

// Report is the assembled maturity report.
type Report struct {
	ID          string    `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Company     string    `json:"company" yaml:"company"`
	Industry    string    `json:"industry" yaml:"industry"`

	ExecutiveSummary  string           `json:"executiveSummary" yaml:"executiveSummary"`
	Recommendations   []Recommendation `json:"recommendations" yaml:"recommendations"`
	ComplianceRoadmap string           `json:"complianceRoadmap" yaml:"complianceRoadmap"`

	Maturity   DimensionScores `json:"maturity" yaml:"maturity"`
	Benchmarks BenchmarkResult `json:"benchmarks" yaml:"benchmarks"`
	Gaps       []Gap           `json:"gaps" yaml:"gaps"`

	Risks           []RiskScenario   `json:"risks" yaml:"risks"`
	QuantifiedRisks []QuantifiedRisk `json:"quantifiedRisks" yaml:"quantifiedRisks"`

	Governance GovernanceSection `json:"governance" yaml:"governance"`
	Access     AccessSection     `json:"access" yaml:"access"`
	Matrix     []PrivilegeEntry  `json:"matrix" yaml:"matrix"`
	Compliance []FrameworkStatus `json:"compliance" yaml:"compliance"`
	Logging    LoggingSection    `json:"logging" yaml:"logging"`

	Narrative map[string]NarrativeOrigin `json:"narrative" yaml:"narrative"`
	Phases    []PhaseResult              `json:"phases" yaml:"phases"`
	Usage     TokenUsage                 `json:"usage" yaml:"usage"`
}
