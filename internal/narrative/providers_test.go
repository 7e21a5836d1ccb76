package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abdallahossam66/GRC-PROJECT/internal/cost"
	"github.com/abdallahossam66/GRC-PROJECT/internal/resilience"
	"github.com/abdallahossam66/GRC-PROJECT/pkg/anthropic"
	"github.com/abdallahossam66/GRC-PROJECT/pkg/ollama"
)

// mockAnthropic implements anthropic.Client for testing.
type mockAnthropic struct {
	mock.Mock
}

func (m *mockAnthropic) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

const testModel = "claude-haiku-4-5-20251001"

func testPrompt() Prompt {
	return Prompt{
		Section:     SectionExecutiveSummary,
		System:      "sys",
		Context:     "ctx",
		User:        "write it",
		Temperature: 0.7,
		MaxTokens:   1500,
	}
}

func TestAnthropicProviderComplete(t *testing.T) {
	mc := new(mockAnthropic)
	mc.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == testModel &&
			req.MaxTokens == 1000 &&
			len(req.System) == 2 &&
			req.System[1].CacheControl != nil &&
			len(req.Messages) == 1 && req.Messages[0].Content == "write it" &&
			req.Temperature != nil && *req.Temperature == 0.7
	})).Return(&anthropic.MessageResponse{
		Content:    []anthropic.ContentBlock{{Type: "text", Text: "  # Executive Summary  "}},
		StopReason: "end_turn",
		Usage: anthropic.TokenUsage{
			InputTokens:          1000,
			OutputTokens:         1000,
			CacheReadInputTokens: 500,
		},
	}, nil)

	p := NewAnthropicProvider(mc, testModel, 1000)
	c, err := p.Complete(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.Equal(t, "# Executive Summary", c.Text)
	assert.Equal(t, int64(1500), c.Usage.InputTokens)
	assert.Equal(t, int64(1000), c.Usage.OutputTokens)
	// 1000 in at $1, 1000 out at $5, 500 cache reads at $0.1 per MTok.
	assert.InDelta(t, 0.00605, c.Usage.Cost, 1e-9)
	mc.AssertExpectations(t)
}

func TestAnthropicProviderKeepsSmallerPromptLimit(t *testing.T) {
	mc := new(mockAnthropic)
	mc.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.MaxTokens == 1500
	})).Return(&anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: "ok"}},
	}, nil)

	_, err := NewAnthropicProvider(mc, testModel, 8000).Complete(context.Background(), testPrompt())
	require.NoError(t, err)
	mc.AssertExpectations(t)
}

func TestAnthropicProviderErrors(t *testing.T) {
	t.Run("empty text is malformed", func(t *testing.T) {
		mc := new(mockAnthropic)
		mc.On("CreateMessage", mock.Anything, mock.Anything).Return(&anthropic.MessageResponse{
			Content:    []anthropic.ContentBlock{{Type: "tool_use"}},
			StopReason: "max_tokens",
		}, nil)
		_, err := NewAnthropicProvider(mc, testModel, 0).Complete(context.Background(), testPrompt())
		assert.ErrorIs(t, err, errMalformed)
	})

	t.Run("transport error passes through", func(t *testing.T) {
		mc := new(mockAnthropic)
		boom := errors.New("boom")
		mc.On("CreateMessage", mock.Anything, mock.Anything).Return(nil, boom)
		_, err := NewAnthropicProvider(mc, testModel, 0).Complete(context.Background(), testPrompt())
		assert.ErrorIs(t, err, boom)
		assert.False(t, resilience.IsTransient(err))
	})
}

func TestAnthropicProviderStatus(t *testing.T) {
	assert.True(t, NewAnthropicProvider(new(mockAnthropic), testModel, 0).Status(context.Background()).Ready)

	s := NewAnthropicProvider(new(mockAnthropic), "", 0).Status(context.Background())
	assert.False(t, s.Ready)
	assert.NotEmpty(t, s.Detail)
	assert.Equal(t, "anthropic", s.Provider)
}

func TestAnthropicProviderPricing(t *testing.T) {
	mc := new(mockAnthropic)
	mc.On("CreateMessage", mock.Anything, mock.Anything).Return(&anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: "ok"}},
		Usage:   anthropic.TokenUsage{InputTokens: 1_000_000, OutputTokens: 100_000},
	}, nil)

	rates := cost.DefaultRates().Merge(map[string]cost.ModelRate{
		"claude-custom": {Input: 2, Output: 10},
	})
	p := NewAnthropicProvider(mc, "claude-custom", 0).WithPricing(cost.NewCalculator(rates))

	c, err := p.Complete(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.InDelta(t, 3.0, c.Usage.Cost, 1e-9)

	s := p.Status(context.Background())
	assert.True(t, s.Ready)
	assert.Empty(t, s.Detail)

	s = NewAnthropicProvider(mc, "claude-unpriced", 0).Status(context.Background())
	assert.True(t, s.Ready)
	assert.Contains(t, s.Detail, "no pricing for claude-unpriced")
}

func newOllamaServer(t *testing.T, generate http.HandlerFunc) ollama.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", generate)
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models": [{"name": "llama3.1:8b", "model": "llama3.1:8b"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return ollama.NewClient(ollama.WithBaseURL(srv.URL))
}

func TestOllamaProviderComplete(t *testing.T) {
	client := newOllamaServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req ollama.GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sys\n\nctx", req.System)
		assert.Equal(t, "write it", req.Prompt)
		assert.Equal(t, 1500, req.Options.NumPredict)
		assert.InDelta(t, 0.7, req.Options.Temperature, 0.0001)
		_, _ = w.Write([]byte(`{"response": "# Executive Summary", "done": true, "prompt_eval_count": 120, "eval_count": 80}`))
	})

	c, err := NewOllamaProvider(client).Complete(context.Background(), testPrompt())
	require.NoError(t, err)
	assert.Equal(t, "# Executive Summary", c.Text)
	assert.Equal(t, int64(120), c.Usage.InputTokens)
	assert.Equal(t, int64(80), c.Usage.OutputTokens)
	assert.Zero(t, c.Usage.Cost)
}

func TestOllamaProviderErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantTransient bool
		wantMalformed bool
	}{
		{"overloaded", http.StatusServiceUnavailable, "busy", true, false},
		{"missing model", http.StatusNotFound, `{"error": "model not found"}`, false, false},
		{"empty response", http.StatusOK, `{"response": "   ", "done": true}`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newOllamaServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := NewOllamaProvider(client).Complete(context.Background(), testPrompt())
			require.Error(t, err)
			assert.Equal(t, tt.wantTransient, resilience.IsTransient(err))
			assert.Equal(t, tt.wantMalformed, errors.Is(err, errMalformed))
		})
	}
}

func TestOllamaProviderStatus(t *testing.T) {
	client := newOllamaServer(t, func(http.ResponseWriter, *http.Request) {})
	s := NewOllamaProvider(client).Status(context.Background())
	assert.True(t, s.Ready)
	assert.Equal(t, "llama3.1:8b", s.Model)
}

func TestOllamaProviderStatusMissingModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models": [{"name": "llama3.1:8b"}]}`))
	}))
	defer srv.Close()

	client := ollama.NewClient(ollama.WithBaseURL(srv.URL), ollama.WithModel("mistral:7b"))
	s := NewOllamaProvider(client).Status(context.Background())
	assert.False(t, s.Ready)
	assert.Equal(t, "model mistral:7b is not installed", s.Detail)

	srv.Close()
	s = NewOllamaProvider(client).Status(context.Background())
	assert.False(t, s.Ready)
	assert.Contains(t, s.Detail, "ollama: send request")
}
