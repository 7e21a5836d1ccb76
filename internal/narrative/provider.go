package narrative

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// Prompt is one provider-neutral completion request. Context carries the
// organization facts shared by every section of a report; providers that
// support prompt caching mark it cacheable.
type Prompt struct {
	Section     string
	System      string
	Context     string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completion is the text a provider returned and what it cost.
type Completion struct {
	Text  string
	Usage model.TokenUsage
}

// Status describes whether a provider can serve requests.
type Status struct {
	Provider string `json:"provider" yaml:"provider"`
	Model    string `json:"model" yaml:"model"`
	Ready    bool   `json:"ready" yaml:"ready"`
	Detail   string `json:"detail,omitempty" yaml:"detail,omitempty"`
	Breaker  string `json:"breaker,omitempty" yaml:"breaker,omitempty"`
}

// Provider is an LLM backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, p Prompt) (Completion, error)
	Status(ctx context.Context) Status
}

// Disabled is the provider used when narratives are turned off. Every request
// fails, so reports carry fallback text.
type Disabled struct{}

func (Disabled) Name() string { return "none" }

func (Disabled) Complete(context.Context, Prompt) (Completion, error) {
	return Completion{}, errDisabled
}

func (Disabled) Status(context.Context) Status {
	return Status{Provider: "none", Detail: "narrative generation disabled"}
}

var errDisabled = eris.New("provider disabled")
