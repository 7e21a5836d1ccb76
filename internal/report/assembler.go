// Package report assembles maturity reports: deterministic scores, gaps,
// benchmarks and risks, plus narrative text that falls back to fixed
// templates whenever the LLM cannot deliver it.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abdallahossam66/GRC-PROJECT/internal/benchmark"
	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/narrative"
	"github.com/abdallahossam66/GRC-PROJECT/internal/risk"
	"github.com/abdallahossam66/GRC-PROJECT/internal/scorer"
)

// PhaseCore names the phase that computes the deterministic results.
const PhaseCore = "core"

// Assessment is the deterministic part of a report.
type Assessment struct {
	Maturity   model.DimensionScores `json:"maturity" yaml:"maturity"`
	Benchmarks model.BenchmarkResult `json:"benchmarks" yaml:"benchmarks"`
	Gaps       []model.Gap           `json:"gaps" yaml:"gaps"`
	Risks      []model.RiskScenario  `json:"risks" yaml:"risks"`
}

// Assembler builds reports. It is safe for concurrent use.
type Assembler struct {
	engine     *scorer.Engine
	comparator *benchmark.Comparator
	narrative  *narrative.Generator
	now        func() time.Time
	newID      func() string
}

// NewAssembler returns an Assembler over tables. A nil gen skips narrative
// requests and every report carries fallback text.
func NewAssembler(tables *industry.Tables, gen *narrative.Generator) *Assembler {
	return &Assembler{
		engine:     scorer.NewEngine(tables),
		comparator: benchmark.NewComparator(tables),
		narrative:  gen,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithoutNarrative returns a copy of a that never calls the LLM.
func (a *Assembler) WithoutNarrative() *Assembler {
	c := *a
	c.narrative = nil
	return &c
}

// Narrative returns the generator, or nil when narratives are skipped.
func (a *Assembler) Narrative() *narrative.Generator { return a.narrative }

// Assess computes maturity, benchmark comparison, gaps and base risks.
func (a *Assembler) Assess(p model.Profile) Assessment {
	maturity := a.engine.CalculateMaturityScore(p)
	return Assessment{
		Maturity:   maturity,
		Benchmarks: a.comparator.Compare(p, maturity.Overall),
		Gaps:       a.engine.IdentifyGaps(p, maturity),
		Risks:      risk.GenerateBaseRisks(p),
	}
}

// narrativeTask requests one section and installs the fallback on failure.
type narrativeTask struct {
	section  string
	call     func(ctx context.Context) error
	fallback func()
}

// Generate builds the full report for p. Core results never depend on the
// narrative outcome; every failed section is replaced by its fallback and
// recorded in Report.Narrative.
func (a *Assembler) Generate(ctx context.Context, p model.Profile) *model.Report {
	log := zap.L().With(zap.String("company", p.DisplayName()), zap.String("industry", p.Industry))
	log.Info("report: starting generation")
	if p.Employees <= 0 {
		log.Warn("report: profile has no employees, admin ratio reported as 0")
	}

	start := time.Now()
	core := a.Assess(p)
	r := &model.Report{
		ID:          a.newID(),
		GeneratedAt: a.now().UTC(),
		Company:     p.DisplayName(),
		Industry:    p.Industry,
		Maturity:    core.Maturity,
		Benchmarks:  core.Benchmarks,
		Gaps:        core.Gaps,
		Risks:       core.Risks,
		Governance:  Governance(p),
		Access:      Access(p),
		Matrix:      PrivilegeMatrix(),
		Compliance:  Compliance(p),
		Logging:     Logging(p),
		Narrative:   make(map[string]model.NarrativeOrigin, len(narrative.Sections)),
	}
	r.Phases = append(r.Phases, model.PhaseResult{
		Name:     PhaseCore,
		Status:   model.PhaseStatusComplete,
		Duration: time.Since(start).Milliseconds(),
	})
	log.Debug("report: core complete",
		zap.Int("overall", core.Maturity.Overall),
		zap.Int("gaps", len(core.Gaps)),
		zap.Int("risks", len(core.Risks)),
	)

	gen := a.narrative
	tasks := []narrativeTask{
		{
			section: narrative.SectionExecutiveSummary,
			call: func(ctx context.Context) error {
				text, err := gen.ExecutiveSummary(ctx, p, core.Maturity)
				r.ExecutiveSummary = text
				return err
			},
			fallback: func() { r.ExecutiveSummary = fallbackSummary(p, core.Maturity, core.Gaps) },
		},
		{
			section: narrative.SectionRecommendations,
			call: func(ctx context.Context) error {
				recs, err := gen.Recommendations(ctx, p, core.Gaps, core.Maturity)
				r.Recommendations = recs
				return err
			},
			fallback: func() { r.Recommendations = fallbackRecommendations(core.Gaps) },
		},
		{
			section: narrative.SectionComplianceRoadmap,
			call: func(ctx context.Context) error {
				text, err := gen.ComplianceRoadmap(ctx, p)
				r.ComplianceRoadmap = text
				return err
			},
			fallback: func() { r.ComplianceRoadmap = fallbackRoadmap(p) },
		},
		{
			section: narrative.SectionQuantifiedRisks,
			call: func(ctx context.Context) error {
				quantified, err := gen.QuantifyRisks(ctx, p, core.Risks)
				r.QuantifiedRisks = quantified
				return err
			},
			fallback: func() { r.QuantifiedRisks = fallbackQuantifiedRisks(core.Risks) },
		},
	}

	// Each task writes only its own report field and slot below.
	phases := make([]model.PhaseResult, len(tasks))
	origins := make([]model.NarrativeOrigin, len(tasks))

	meter := &narrative.Meter{}
	g, gCtx := errgroup.WithContext(narrative.WithMeter(ctx, meter))
	for i, t := range tasks {
		g.Go(func() error {
			phases[i], origins[i] = a.runTask(gCtx, log, t)
			return nil
		})
	}
	_ = g.Wait()

	for i, t := range tasks {
		r.Phases = append(r.Phases, phases[i])
		r.Narrative[t.section] = origins[i]
	}
	if r.Recommendations == nil {
		r.Recommendations = []model.Recommendation{}
	}
	if r.QuantifiedRisks == nil {
		r.QuantifiedRisks = []model.QuantifiedRisk{}
	}
	r.Usage = meter.Total()

	log.Info("report: generation complete",
		zap.String("report_id", r.ID),
		zap.Int("overall", r.Maturity.Overall),
		zap.Int64("input_tokens", r.Usage.InputTokens),
		zap.Int64("output_tokens", r.Usage.OutputTokens),
		zap.Float64("cost_usd", r.Usage.Cost),
		zap.Duration("elapsed", time.Since(start)),
	)
	return r
}

func (a *Assembler) runTask(ctx context.Context, log *zap.Logger, t narrativeTask) (model.PhaseResult, model.NarrativeOrigin) {
	start := time.Now()
	pr := model.PhaseResult{Name: t.section, Status: model.PhaseStatusComplete}
	origin := model.NarrativeOrigin{Source: model.SourceLLM}

	switch {
	case a.narrative == nil:
		pr.Status = model.PhaseStatusSkipped
		origin.Source = model.SourceFallback
		t.fallback()
	default:
		if err := t.call(ctx); err != nil {
			kind := narrative.KindOf(err)
			pr.Status = model.PhaseStatusFallback
			pr.Error = err.Error()
			origin = model.NarrativeOrigin{Source: model.SourceFallback, ErrorKind: string(kind)}
			log.Warn("report: narrative failed, using fallback",
				zap.String("section", t.section),
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
			t.fallback()
		}
	}

	pr.Duration = time.Since(start).Milliseconds()
	return pr, origin
}
