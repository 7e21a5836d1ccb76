package narrative

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/abdallahossam66/GRC-PROJECT/internal/cost"
	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/resilience"
	"github.com/abdallahossam66/GRC-PROJECT/pkg/anthropic"
)

// AnthropicProvider serves prompts with the Anthropic Messages API.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int
	pricing   *cost.Calculator
}

// NewAnthropicProvider wraps client. maxTokens caps every request; zero
// leaves each prompt's own limit in place. Usage is priced with
// cost.DefaultRates until WithPricing replaces them.
func NewAnthropicProvider(client anthropic.Client, model string, maxTokens int) *AnthropicProvider {
	return &AnthropicProvider{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		pricing:   cost.NewCalculator(cost.DefaultRates()),
	}
}

// WithPricing sets the calculator used to price usage.
func (a *AnthropicProvider) WithPricing(c *cost.Calculator) *AnthropicProvider {
	a.pricing = c
	return a
}

func (a *AnthropicProvider) Name() string { return "anthropic" }

func (a *AnthropicProvider) Complete(ctx context.Context, p Prompt) (Completion, error) {
	maxTokens := p.MaxTokens
	if a.maxTokens > 0 && (maxTokens <= 0 || maxTokens > a.maxTokens) {
		maxTokens = a.maxTokens
	}
	temp := p.Temperature

	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   int64(maxTokens),
		System:      anthropic.BuildCachedSystemBlocks(p.System, p.Context),
		Messages:    []anthropic.Message{{Role: "user", Content: p.User}},
		Temperature: &temp,
	})
	if err != nil {
		if code := anthropic.StatusCode(err); resilience.IsTransientStatus(code) {
			return Completion{}, resilience.Transient(err, code)
		}
		return Completion{}, err
	}

	u := resp.Usage
	costUSD := a.pricing.Claude(a.model, u.InputTokens, u.OutputTokens, u.CacheCreationInputTokens, u.CacheReadInputTokens)
	u.LogCost(a.model, p.Section, costUSD)

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Completion{}, eris.Wrapf(errMalformed, "anthropic: empty response (stop reason %q)", resp.StopReason)
	}
	return Completion{
		Text: text,
		Usage: model.TokenUsage{
			InputTokens:  u.InputTokens + u.CacheCreationInputTokens + u.CacheReadInputTokens,
			OutputTokens: u.OutputTokens,
			Cost:         costUSD,
		},
	}, nil
}

// Status reports the provider as ready when it has a model configured. No
// request is made.
func (a *AnthropicProvider) Status(context.Context) Status {
	s := Status{Provider: a.Name(), Model: a.model, Ready: a.client != nil && a.model != ""}
	switch {
	case !s.Ready:
		s.Detail = "anthropic client or model not configured"
	case !a.pricing.Known(a.model):
		s.Detail = "no pricing for " + a.model + ", cost reported as 0"
	}
	return s
}
