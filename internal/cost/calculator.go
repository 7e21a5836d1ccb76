// Package cost prices LLM token usage for report narratives.
package cost

import "strings"

// Default cache multipliers applied to a model's input rate.
const (
	DefaultCacheWriteMul = 1.25
	DefaultCacheReadMul  = 0.1
)

// ModelRate holds per-model token pricing (USD per million tokens).
type ModelRate struct {
	Input         float64 `yaml:"input" mapstructure:"input"`
	Output        float64 `yaml:"output" mapstructure:"output"`
	CacheWriteMul float64 `yaml:"cache_write_mul" mapstructure:"cache_write_mul"`
	CacheReadMul  float64 `yaml:"cache_read_mul" mapstructure:"cache_read_mul"`
}

// Rates holds pricing for every hosted model. Local providers are free.
type Rates struct {
	Anthropic map[string]ModelRate `yaml:"anthropic" mapstructure:"anthropic"`
}

// Merge returns a copy of r with overrides replacing whole model entries.
// Unset cache multipliers in an override take the defaults.
func (r Rates) Merge(overrides map[string]ModelRate) Rates {
	out := Rates{Anthropic: make(map[string]ModelRate, len(r.Anthropic)+len(overrides))}
	for k, v := range r.Anthropic {
		out.Anthropic[k] = v
	}
	for k, v := range overrides {
		if v.CacheWriteMul == 0 {
			v.CacheWriteMul = DefaultCacheWriteMul
		}
		if v.CacheReadMul == 0 {
			v.CacheReadMul = DefaultCacheReadMul
		}
		out.Anthropic[strings.ToLower(k)] = v
	}
	return out
}

// Calculator computes costs for API usage.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Known reports whether model has a price.
func (c *Calculator) Known(model string) bool {
	_, ok := c.rates.Anthropic[model]
	return ok
}

// Claude computes the cost for a Claude API call. Unknown models cost 0.
func (c *Calculator) Claude(model string, input, output, cacheWrite, cacheRead int64) float64 {
	rate, ok := c.rates.Anthropic[model]
	if !ok {
		return 0
	}

	inCost := (float64(input) / 1e6) * rate.Input
	outCost := (float64(output) / 1e6) * rate.Output
	cwCost := (float64(cacheWrite) / 1e6) * rate.Input * rate.CacheWriteMul
	crCost := (float64(cacheRead) / 1e6) * rate.Input * rate.CacheReadMul

	return inCost + outCost + cwCost + crCost
}

// DefaultRates returns the default pricing rates.
func DefaultRates() Rates {
	return Rates{
		Anthropic: map[string]ModelRate{
			"claude-haiku-4-5-20251001": {
				Input: 1.00, Output: 5.00,
				CacheWriteMul: DefaultCacheWriteMul, CacheReadMul: DefaultCacheReadMul,
			},
			"claude-sonnet-4-5-20250929": {
				Input: 3.00, Output: 15.00,
				CacheWriteMul: DefaultCacheWriteMul, CacheReadMul: DefaultCacheReadMul,
			},
			"claude-opus-4-1-20250805": {
				Input: 15.00, Output: 75.00,
				CacheWriteMul: DefaultCacheWriteMul, CacheReadMul: DefaultCacheReadMul,
			},
		},
	}
}
