// Package narrative produces the LLM-written parts of a maturity report:
// executive summary, recommendations, compliance roadmap and risk
// quantification. Every call runs under a timeout, a rate limit, retries for
// transient failures and a circuit breaker, and fails with a typed *Error.
package narrative

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/resilience"
)

// DefaultTimeout bounds a single section when Options.Timeout is unset.
const DefaultTimeout = 60 * time.Second

// Options tune a Generator.
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Retry             resilience.Policy
	Breaker           resilience.BreakerConfig
}

// Generator requests narrative sections from a Provider. It is safe for
// concurrent use.
type Generator struct {
	provider Provider
	timeout  time.Duration
	limiter  *rate.Limiter
	retry    resilience.Policy
	breaker  *resilience.Breaker
}

// NewGenerator builds a Generator over provider.
func NewGenerator(provider Provider, opts Options) *Generator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	retry := opts.Retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.LogRetry(provider.Name(), "narrative")
	}
	breaker := opts.Breaker
	if breaker.OnChange == nil {
		name := provider.Name()
		breaker.OnChange = func(from, to resilience.State) {
			zap.L().Warn("narrative: circuit state changed",
				zap.String("provider", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		}
	}
	return &Generator{
		provider: provider,
		timeout:  opts.Timeout,
		limiter:  rate.NewLimiter(limit, 1),
		retry:    retry,
		breaker:  resilience.NewBreaker(breaker),
	}
}

// Provider returns the backend name.
func (g *Generator) Provider() string { return g.provider.Name() }

// Status reports provider readiness and the breaker state.
func (g *Generator) Status(ctx context.Context) Status {
	s := g.provider.Status(ctx)
	s.Breaker = g.breaker.State().String()
	return s
}

// complete runs one prompt under the generator's timeout and protections.
func (g *Generator) complete(ctx context.Context, p Prompt) (Completion, error) {
	if _, off := g.provider.(Disabled); off {
		return Completion{}, &Error{Kind: KindRequestFailed, Section: p.Section, Err: errDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	if err := g.limiter.Wait(ctx); err != nil {
		// Wait fails early when the deadline would pass before a token frees.
		kind := KindTimeout
		if errors.Is(ctx.Err(), context.Canceled) {
			kind = KindRequestFailed
		}
		return Completion{}, &Error{Kind: kind, Section: p.Section, Err: err}
	}

	c, err := resilience.Retry(ctx, g.retry, func(ctx context.Context) (Completion, error) {
		return resilience.Call(ctx, g.breaker, func(ctx context.Context) (Completion, error) {
			return g.provider.Complete(ctx, p)
		})
	})
	if err != nil {
		nerr := classify(ctx, p.Section, err)
		zap.L().Warn("narrative: section failed",
			zap.String("provider", g.provider.Name()),
			zap.String("section", p.Section),
			zap.String("kind", string(nerr.Kind)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return Completion{}, nerr
	}

	MeterFrom(ctx).add(p.Section, c.Usage)
	zap.L().Debug("narrative: section complete",
		zap.String("provider", g.provider.Name()),
		zap.String("section", p.Section),
		zap.Int64("output_tokens", c.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)),
	)
	return c, nil
}

// ExecutiveSummary returns a markdown executive summary.
func (g *Generator) ExecutiveSummary(ctx context.Context, p model.Profile, scores model.DimensionScores) (string, error) {
	c, err := g.complete(ctx, executiveSummaryPrompt(p, scores))
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// Recommendations returns prioritized remediation items.
func (g *Generator) Recommendations(ctx context.Context, p model.Profile, gaps []model.Gap, scores model.DimensionScores) ([]model.Recommendation, error) {
	prompt := recommendationsPrompt(p, gaps, scores)
	c, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	recs, err := parseRecommendations(c.Text)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Section: prompt.Section, Err: err}
	}
	return recs, nil
}

// ComplianceRoadmap returns a markdown compliance roadmap.
func (g *Generator) ComplianceRoadmap(ctx context.Context, p model.Profile) (string, error) {
	c, err := g.complete(ctx, complianceRoadmapPrompt(p))
	if err != nil {
		return "", err
	}
	return c.Text, nil
}

// QuantifyRisks returns loss expectancy figures for risks.
func (g *Generator) QuantifyRisks(ctx context.Context, p model.Profile, risks []model.RiskScenario) ([]model.QuantifiedRisk, error) {
	prompt := quantifyRisksPrompt(p, risks)
	c, err := g.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	quantified, err := parseQuantifiedRisks(c.Text)
	if err != nil {
		return nil, &Error{Kind: KindMalformed, Section: prompt.Section, Err: err}
	}
	return quantified, nil
}

// Meter totals token usage across the sections of one report.
type Meter struct {
	mu        sync.Mutex
	total     model.TokenUsage
	bySection map[string]model.TokenUsage
}

type meterKey struct{}

// WithMeter returns a context whose Generator calls record usage into m.
func WithMeter(ctx context.Context, m *Meter) context.Context {
	return context.WithValue(ctx, meterKey{}, m)
}

// MeterFrom returns the Meter carried by ctx, or nil.
func MeterFrom(ctx context.Context) *Meter {
	m, _ := ctx.Value(meterKey{}).(*Meter)
	return m
}

func (m *Meter) add(section string, u model.TokenUsage) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total.Add(u)
	if m.bySection == nil {
		m.bySection = make(map[string]model.TokenUsage)
	}
	s := m.bySection[section]
	s.Add(u)
	m.bySection[section] = s
}

// Total returns the usage recorded so far.
func (m *Meter) Total() model.TokenUsage {
	if m == nil {
		return model.TokenUsage{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// Section returns the usage recorded for one section.
func (m *Meter) Section(name string) model.TokenUsage {
	if m == nil {
		return model.TokenUsage{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bySection[name]
}
