package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/narrative"
	"github.com/abdallahossam66/GRC-PROJECT/internal/resilience"
)

// stubProvider answers each section with a canned completion or error.
type stubProvider struct {
	texts map[string]string
	errs  map[string]error
	block bool
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, p narrative.Prompt) (narrative.Completion, error) {
	if s.block {
		<-ctx.Done()
		return narrative.Completion{}, ctx.Err()
	}
	if err := s.errs[p.Section]; err != nil {
		return narrative.Completion{}, err
	}
	return narrative.Completion{
		Text:  s.texts[p.Section],
		Usage: model.TokenUsage{InputTokens: 100, OutputTokens: 50, Cost: 0.25},
	}, nil
}

func (s *stubProvider) Status(context.Context) narrative.Status {
	return narrative.Status{Provider: "stub", Ready: true}
}

const (
	llmSummary = "# Executive Summary\n\nWritten by the model."
	llmRoadmap = "# Compliance Roadmap\n\nWritten by the model."
	llmRecs    = `{"recommendations": [{"id": 1, "title": "Write an incident response plan", "category": "Risk Management", "priority": "High", "steps": ["Draft", "Test"]}]}`
	llmRisks   = `[{"risk": "Cloud Misconfiguration", "sle": 200000, "aro": 0.25, "ale": 50000, "mitigationCost": 10000, "roi": 400}]`
)

func goodTexts() map[string]string {
	return map[string]string{
		narrative.SectionExecutiveSummary:  llmSummary,
		narrative.SectionRecommendations:   llmRecs,
		narrative.SectionComplianceRoadmap: llmRoadmap,
		narrative.SectionQuantifiedRisks:   llmRisks,
	}
}

func newTestAssembler(p narrative.Provider, timeout time.Duration) *Assembler {
	var gen *narrative.Generator
	if p != nil {
		gen = narrative.NewGenerator(p, narrative.Options{
			Timeout: timeout,
			Retry:   resilience.Policy{Attempts: 1},
		})
	}
	a := NewAssembler(industry.Builtin(), gen)
	a.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func phaseStatuses(r *model.Report) map[string]model.PhaseStatus {
	out := make(map[string]model.PhaseStatus, len(r.Phases))
	for _, p := range r.Phases {
		out[p.Name] = p.Status
	}
	return out
}

func TestGenerateWithNarrative(t *testing.T) {
	a := newTestAssembler(&stubProvider{texts: goodTexts()}, time.Second)
	p := model.DefaultProfile()

	r := a.Generate(context.Background(), p)

	_, err := uuid.Parse(r.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), r.GeneratedAt)
	assert.Equal(t, "Organization", r.Company)
	assert.Equal(t, "saas", r.Industry)

	assert.Equal(t, llmSummary, r.ExecutiveSummary)
	assert.Equal(t, llmRoadmap, r.ComplianceRoadmap)
	require.Len(t, r.Recommendations, 1)
	assert.Equal(t, "Write an incident response plan", r.Recommendations[0].Title)
	require.Len(t, r.QuantifiedRisks, 1)
	assert.InDelta(t, 50000, r.QuantifiedRisks[0].ALE, 0.001)

	for _, s := range narrative.Sections {
		assert.Equal(t, model.NarrativeOrigin{Source: model.SourceLLM}, r.Narrative[s], s)
	}

	require.Len(t, r.Phases, 5)
	assert.Equal(t, PhaseCore, r.Phases[0].Name)
	for i, s := range narrative.Sections {
		assert.Equal(t, s, r.Phases[i+1].Name)
		assert.Equal(t, model.PhaseStatusComplete, r.Phases[i+1].Status)
	}

	assert.Equal(t, model.TokenUsage{InputTokens: 400, OutputTokens: 200, Cost: 1}, r.Usage)
}

func TestGenerateCoreMatchesAssess(t *testing.T) {
	a := newTestAssembler(&stubProvider{texts: goodTexts()}, time.Second)
	p := model.DefaultProfile()
	p.BackupFrequency = "none"

	core := a.Assess(p)
	r := a.Generate(context.Background(), p)

	assert.Equal(t, core.Maturity, r.Maturity)
	assert.Equal(t, core.Benchmarks, r.Benchmarks)
	assert.Equal(t, core.Gaps, r.Gaps)
	assert.Equal(t, core.Risks, r.Risks)
	assert.Equal(t, r.Maturity.Overall, r.Benchmarks.YourScore)
}

func TestGenerateWithoutNarrative(t *testing.T) {
	provider := &stubProvider{texts: goodTexts()}
	a := newTestAssembler(provider, time.Second)
	off := a.WithoutNarrative()
	require.NotNil(t, a.Narrative())
	assert.Nil(t, off.Narrative())

	p := model.DefaultProfile()
	r := off.Generate(context.Background(), p)

	assert.Equal(t, fallbackSummary(p, r.Maturity, r.Gaps), r.ExecutiveSummary)
	assert.Equal(t, fallbackRoadmap(p), r.ComplianceRoadmap)
	assert.Equal(t, fallbackRecommendations(r.Gaps), r.Recommendations)
	assert.Len(t, r.QuantifiedRisks, len(r.Risks))

	for _, s := range narrative.Sections {
		assert.Equal(t, model.NarrativeOrigin{Source: model.SourceFallback}, r.Narrative[s])
		assert.Equal(t, model.PhaseStatusSkipped, phaseStatuses(r)[s])
	}
	assert.Equal(t, model.TokenUsage{}, r.Usage)
}

func TestGeneratePartialFailure(t *testing.T) {
	texts := goodTexts()
	texts[narrative.SectionRecommendations] = "I'd suggest enabling MFA."
	provider := &stubProvider{
		texts: texts,
		errs:  map[string]error{narrative.SectionQuantifiedRisks: errors.New("401 invalid api key")},
	}
	a := newTestAssembler(provider, time.Second)
	p := model.DefaultProfile()

	r := a.Generate(context.Background(), p)

	assert.Equal(t, llmSummary, r.ExecutiveSummary)
	assert.Equal(t, model.SourceLLM, r.Narrative[narrative.SectionExecutiveSummary].Source)

	assert.Equal(t, fallbackRecommendations(r.Gaps), r.Recommendations)
	assert.Equal(t, model.NarrativeOrigin{Source: model.SourceFallback, ErrorKind: "malformed_response"}, r.Narrative[narrative.SectionRecommendations])

	assert.Equal(t, fallbackQuantifiedRisks(r.Risks), r.QuantifiedRisks)
	assert.Equal(t, model.NarrativeOrigin{Source: model.SourceFallback, ErrorKind: "request_failed"}, r.Narrative[narrative.SectionQuantifiedRisks])

	statuses := phaseStatuses(r)
	assert.Equal(t, model.PhaseStatusFallback, statuses[narrative.SectionRecommendations])
	assert.Equal(t, model.PhaseStatusFallback, statuses[narrative.SectionQuantifiedRisks])
	assert.Equal(t, model.PhaseStatusComplete, statuses[narrative.SectionComplianceRoadmap])
	for _, ph := range r.Phases {
		if ph.Status == model.PhaseStatusFallback {
			assert.NotEmpty(t, ph.Error)
		}
	}

	// Only the two successful calls and the unparseable one were billed.
	assert.Equal(t, int64(300), r.Usage.InputTokens)
}

func TestGenerateTimeoutKeepsCore(t *testing.T) {
	a := newTestAssembler(&stubProvider{block: true}, 20*time.Millisecond)
	p := model.DefaultProfile()

	start := time.Now()
	r := a.Generate(context.Background(), p)
	assert.Less(t, time.Since(start), 2*time.Second)

	for _, s := range narrative.Sections {
		assert.Equal(t, model.NarrativeOrigin{Source: model.SourceFallback, ErrorKind: "timeout"}, r.Narrative[s])
	}
	assert.Equal(t, 76, r.Maturity.Overall)
	assert.Len(t, r.Risks, 4)
	assert.NotEmpty(t, r.ExecutiveSummary)
	assert.NotEmpty(t, r.ComplianceRoadmap)
}

func TestGenerateCriticalBackupScenario(t *testing.T) {
	p := model.DefaultProfile()
	p.BackupFrequency = "none"
	r := newTestAssembler(nil, 0).Generate(context.Background(), p)

	var critGap bool
	for _, g := range r.Gaps {
		if g.SpecificIssue == "no_backup" && g.Severity == model.SeverityCritical {
			critGap = true
		}
	}
	assert.True(t, critGap)

	var ransomware bool
	for _, rk := range r.Risks {
		if rk.Risk == "Ransomware Attack with Data Loss" && rk.Level == "Critical" {
			ransomware = true
		}
	}
	assert.True(t, ransomware)
	assert.Contains(t, r.ExecutiveSummary, "1 critical security gaps identified")
	assert.Contains(t, r.ExecutiveSummary, "1. No backup strategy in place - critical data loss risk")
}

func TestGenerateSaaSCertified(t *testing.T) {
	p := model.DefaultProfile()
	p.ExistingCertifications = []string{"soc2"}
	r := newTestAssembler(nil, 0).Generate(context.Background(), p)
	assert.Equal(t, StatusCertified, statuses(r.Compliance)["SOC 2"])
}

func TestGenerateConcurrentCallers(t *testing.T) {
	a := newTestAssembler(&stubProvider{texts: goodTexts()}, time.Second)
	p := model.DefaultProfile()

	ids := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() { ids <- a.Generate(context.Background(), p).ID }()
	}
	seen := make(map[string]bool)
	for i := 0; i < 8; i++ {
		seen[<-ids] = true
	}
	assert.Len(t, seen, 8)
}
