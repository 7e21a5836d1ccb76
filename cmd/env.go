package main

import (
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/abdallahossam66/GRC-PROJECT/internal/config"
	"github.com/abdallahossam66/GRC-PROJECT/internal/cost"
	"github.com/abdallahossam66/GRC-PROJECT/internal/industry"
	"github.com/abdallahossam66/GRC-PROJECT/internal/narrative"
	"github.com/abdallahossam66/GRC-PROJECT/internal/report"
	"github.com/abdallahossam66/GRC-PROJECT/internal/resilience"
	anthropicpkg "github.com/abdallahossam66/GRC-PROJECT/pkg/anthropic"
	"github.com/abdallahossam66/GRC-PROJECT/pkg/ollama"
)

// reportEnv holds the industry tables, narrative generator and assembler
// shared by the report, score, serve and mcp commands.
type reportEnv struct {
	Tables    *industry.Tables
	Generator *narrative.Generator // nil when narratives are off
	Assembler *report.Assembler
}

// initEnv validates cfg for mode, loads the industry tables and builds the
// assembler. withNarrative false skips building a provider entirely.
func initEnv(mode string, withNarrative bool) (*reportEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	tables, err := industry.Load(cfg.Industry.TablesFile)
	if err != nil {
		return nil, eris.Wrap(err, "load industry tables")
	}
	zap.L().Debug("industry tables loaded",
		zap.Int("industries", len(tables.Industries())),
		zap.String("overrides", cfg.Industry.TablesFile),
	)

	var gen *narrative.Generator
	if withNarrative {
		gen, err = newGenerator(cfg)
		if err != nil {
			return nil, err
		}
	}

	return &reportEnv{
		Tables:    tables,
		Generator: gen,
		Assembler: report.NewAssembler(tables, gen),
	}, nil
}

// newProvider builds the configured LLM backend.
func newProvider(c *config.Config) (narrative.Provider, error) {
	switch c.Narrative.Provider {
	case config.ProviderAnthropic:
		var opts []option.RequestOption
		if c.Anthropic.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(c.Anthropic.BaseURL))
		}
		client := anthropicpkg.NewClient(c.Anthropic.Key, opts...)
		pricing := cost.NewCalculator(pricingRates(c.Pricing))
		return narrative.NewAnthropicProvider(client, c.Anthropic.Model, c.Anthropic.MaxTokens).WithPricing(pricing), nil
	case config.ProviderOllama:
		// The generator's per-section timeout is the real bound.
		httpTimeout := narrative.DefaultTimeout + 5*time.Second
		if c.Narrative.TimeoutSecs > 0 {
			httpTimeout = time.Duration(c.Narrative.TimeoutSecs+5) * time.Second
		}
		client := ollama.NewClient(
			ollama.WithBaseURL(c.Ollama.BaseURL),
			ollama.WithModel(c.Ollama.Model),
			ollama.WithHTTPClient(&http.Client{Timeout: httpTimeout}),
		)
		return narrative.NewOllamaProvider(client), nil
	case config.ProviderNone:
		return narrative.Disabled{}, nil
	}
	return nil, eris.Errorf("unknown narrative provider %q", c.Narrative.Provider)
}

// pricingRates overlays configured model prices on the built-in rates.
func pricingRates(p config.PricingConfig) cost.Rates {
	overrides := make(map[string]cost.ModelRate, len(p.Anthropic))
	for model, mp := range p.Anthropic {
		overrides[model] = cost.ModelRate{
			Input:         mp.Input,
			Output:        mp.Output,
			CacheWriteMul: mp.CacheWriteMul,
			CacheReadMul:  mp.CacheReadMul,
		}
	}
	return cost.DefaultRates().Merge(overrides)
}

// newGenerator wraps the configured provider with the configured timeout,
// rate limit, retry policy and circuit breaker.
func newGenerator(c *config.Config) (*narrative.Generator, error) {
	provider, err := newProvider(c)
	if err != nil {
		return nil, err
	}

	n := c.Narrative
	gen := narrative.NewGenerator(provider, narrative.Options{
		Timeout:           time.Duration(n.TimeoutSecs) * time.Second,
		RequestsPerSecond: n.RequestsPerSecond,
		Retry:             resilience.NewPolicy(n.MaxAttempts, n.InitialBackoffMs, n.MaxBackoffMs),
		Breaker:           resilience.NewBreakerConfig(n.BreakerThreshold, n.BreakerResetSecs),
	})
	zap.L().Info("narrative generator ready",
		zap.String("provider", provider.Name()),
		zap.Int("timeout_secs", n.TimeoutSecs),
		zap.Int("max_attempts", n.MaxAttempts),
	)
	return gen, nil
}
