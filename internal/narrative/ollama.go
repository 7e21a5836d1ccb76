package narrative

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
	"github.com/abdallahossam66/GRC-PROJECT/internal/resilience"
	"github.com/abdallahossam66/GRC-PROJECT/pkg/ollama"
)

// OllamaProvider serves prompts with a local Ollama server.
type OllamaProvider struct {
	client ollama.Client
}

// NewOllamaProvider wraps client.
func NewOllamaProvider(client ollama.Client) *OllamaProvider {
	return &OllamaProvider{client: client}
}

func (o *OllamaProvider) Name() string { return "ollama" }

func (o *OllamaProvider) Complete(ctx context.Context, p Prompt) (Completion, error) {
	system := p.System
	if p.Context != "" {
		system += "\n\n" + p.Context
	}

	resp, err := o.client.Generate(ctx, ollama.GenerateRequest{
		Prompt: p.User,
		System: system,
		Options: ollama.Options{
			Temperature: p.Temperature,
			NumPredict:  p.MaxTokens,
		},
	})
	if err != nil {
		var se *ollama.StatusError
		if errors.As(err, &se) && resilience.IsTransientStatus(se.StatusCode) {
			return Completion{}, resilience.Transient(err, se.StatusCode)
		}
		return Completion{}, err
	}

	text := strings.TrimSpace(resp.Response)
	if text == "" {
		return Completion{}, eris.Wrap(errMalformed, "ollama: empty response")
	}
	return Completion{
		Text: text,
		Usage: model.TokenUsage{
			InputTokens:  int64(resp.PromptEvalCount),
			OutputTokens: int64(resp.EvalCount),
		},
	}, nil
}

// Status asks the server which models are installed.
func (o *OllamaProvider) Status(ctx context.Context) Status {
	s := Status{Provider: o.Name(), Model: o.client.Model()}
	tags, err := o.client.Tags(ctx)
	if err != nil {
		s.Detail = err.Error()
		return s
	}
	s.Ready = tags.Has(s.Model)
	if !s.Ready {
		s.Detail = "model " + s.Model + " is not installed"
	}
	return s
}
