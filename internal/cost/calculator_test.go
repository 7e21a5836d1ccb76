package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRates() Rates {
	return Rates{
		Anthropic: map[string]ModelRate{
			"haiku": {
				Input: 1.00, Output: 5.00,
				CacheWriteMul: 1.25, CacheReadMul: 0.1,
			},
			"sonnet": {
				Input: 3.00, Output: 15.00,
				CacheWriteMul: 1.25, CacheReadMul: 0.1,
			},
		},
	}
}

func TestClaude(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testRates())

	tests := []struct {
		name       string
		model      string
		input      int64
		output     int64
		cacheWrite int64
		cacheRead  int64
		want       float64
	}{
		{
			name:  "haiku simple",
			model: "haiku", input: 1000000, output: 100000,
			want: 1.00 + 0.50,
		},
		{
			name:  "haiku with cache",
			model: "haiku", input: 500000, output: 100000,
			cacheWrite: 200000, cacheRead: 300000,
			// in: 0.5 * 1.00 = 0.50
			// out: 0.1 * 5.00 = 0.50
			// cw: 0.2 * 1.00 * 1.25 = 0.25
			// cr: 0.3 * 1.00 * 0.1 = 0.03
			want: 0.50 + 0.50 + 0.25 + 0.03,
		},
		{
			name:  "sonnet",
			model: "sonnet", input: 1000000, output: 100000,
			want: 3.00 + 1.50,
		},
		{
			name:  "unknown model returns 0",
			model: "llama3.1:8b", input: 1000000, output: 1000000,
			want: 0,
		},
		{
			name:  "zero tokens returns 0",
			model: "haiku",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := calc.Claude(tt.model, tt.input, tt.output, tt.cacheWrite, tt.cacheRead)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestKnown(t *testing.T) {
	t.Parallel()
	calc := NewCalculator(testRates())
	assert.True(t, calc.Known("haiku"))
	assert.False(t, calc.Known("opus"))
}

func TestMerge(t *testing.T) {
	t.Parallel()
	base := testRates()

	merged := base.Merge(map[string]ModelRate{
		"Sonnet":      {Input: 2.00, Output: 10.00},
		"claude-next": {Input: 4.00, Output: 20.00, CacheWriteMul: 2, CacheReadMul: 0.5},
	})

	assert.Len(t, merged.Anthropic, 3)
	assert.Equal(t, ModelRate{Input: 2.00, Output: 10.00, CacheWriteMul: 1.25, CacheReadMul: 0.1}, merged.Anthropic["sonnet"])
	assert.InDelta(t, 2.0, merged.Anthropic["claude-next"].CacheWriteMul, 0.0001)

	// the receiver is untouched
	assert.InDelta(t, 3.00, base.Anthropic["sonnet"].Input, 0.0001)
	assert.Len(t, base.Anthropic, 2)
}

func TestDefaultRates(t *testing.T) {
	t.Parallel()
	rates := DefaultRates()

	assert.Contains(t, rates.Anthropic, "claude-haiku-4-5-20251001")
	assert.Contains(t, rates.Anthropic, "claude-sonnet-4-5-20250929")
	assert.Contains(t, rates.Anthropic, "claude-opus-4-1-20250805")

	calc := NewCalculator(rates)
	assert.InDelta(t, 6.00, calc.Claude("claude-haiku-4-5-20251001", 1_000_000, 1_000_000, 0, 0), 0.001)
}
